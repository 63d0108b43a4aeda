package plan

import (
	"encoding/json"
	"fmt"
	"os"
)

// RenderProps is the render-job boundary contract: the plan plus the
// already-rendered media the compositor references by path.
type RenderProps struct {
	Plan      LessonVideoPlan `json:"plan"`
	AudioSrc  string          `json:"audioSrc"`
	AvatarSrc string          `json:"avatarSrc,omitempty"`
	LessonURL string          `json:"lessonUrl,omitempty"`
}

// ReadProps loads a props JSON file.
func ReadProps(path string) (*RenderProps, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read props: %w", err)
	}

	var props RenderProps
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("parse props %s: %w", path, err)
	}
	return &props, nil
}

// WriteProps saves a props file for later or remote rendering.
func WriteProps(props *RenderProps, path string) error {
	data, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
