package league

import (
	"fmt"
	"strings"
	"time"
)

// League groups the teams that draft from the shared player pool.
type League struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}
