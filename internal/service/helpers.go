package service

import (
	"fmt"
	"time"
)

// parseDataOpcional converte datas "2006-01-02" vindas dos DTOs.
func parseDataOpcional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("data invalida %q: %w", *s, err)
	}
	return &t, nil
}
