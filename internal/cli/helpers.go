package cli

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/pipeboard/internal/models"
)

// ResolveStage finds a stage by ID or, case-insensitively, by title
func ResolveStage(stages []models.Column, ref string) (models.Column, error) {
	ref = strings.TrimSpace(ref)
	for _, s := range stages {
		if s.ID == ref {
			return s, nil
		}
	}
	for _, s := range stages {
		if strings.EqualFold(s.Title, ref) {
			return s, nil
		}
	}
	return models.Column{}, fmt.Errorf("%w: %q", models.ErrStageNotFound, ref)
}

// ParseFields turns repeated key=value flags into a field map
func ParseFields(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fields := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, &DataError{Err: fmt.Errorf("invalid field %q (want key=value)", p)}
		}
		fields[k] = strings.TrimSpace(v)
	}
	return fields, nil
}
