package championship

import (
	"fmt"
	"strings"
	"time"
)

// Championship is a tournament run by a single organizer.
type Championship struct {
	ID          string
	Name        string
	Category    string
	StartDate   time.Time
	EndDate     time.Time
	Rules       string
	LogoURL     string
	IsActive    bool
	OrganizerID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c Championship) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("championship id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("championship name is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("championship category is required")
	}
	if strings.TrimSpace(c.OrganizerID) == "" {
		return fmt.Errorf("championship organizer is required")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("championship start and end dates are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("championship end date must not be before start date")
	}

	return nil
}

// IsOrganizer reports whether userID owns the championship.
func (c Championship) IsOrganizer(userID string) bool {
	userID = strings.TrimSpace(userID)
	return userID != "" && userID == c.OrganizerID
}
