package prediction

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

type Choice string

const (
	ChoiceHome Choice = "home"
	ChoiceDraw Choice = "draw"
	ChoiceAway Choice = "away"
)

var ErrDuplicateVote = errors.New("voter already predicted this match")

// Vote is one fan's prediction. VoterKey is a hash, never a raw address.
type Vote struct {
	ID        string
	MatchID   string
	Choice    Choice
	VoterKey  string
	CreatedAt time.Time
}

func (v Vote) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("vote id is required")
	}
	if strings.TrimSpace(v.MatchID) == "" {
		return fmt.Errorf("vote match id is required")
	}
	if _, err := ParseChoice(string(v.Choice)); err != nil {
		return err
	}
	if strings.TrimSpace(v.VoterKey) == "" {
		return fmt.Errorf("vote voter key is required")
	}
	return nil
}

func ParseChoice(raw string) (Choice, error) {
	switch Choice(strings.ToLower(strings.TrimSpace(raw))) {
	case ChoiceHome:
		return ChoiceHome, nil
	case ChoiceDraw:
		return ChoiceDraw, nil
	case ChoiceAway:
		return ChoiceAway, nil
	default:
		return "", fmt.Errorf("invalid prediction choice: %q", raw)
	}
}

// VoterKey derives a per-match voter key from the caller address.
func VoterKey(matchID, remoteAddr string) string {
	sum := sha256.Sum256([]byte(matchID + "|" + strings.TrimSpace(remoteAddr)))
	return hex.EncodeToString(sum[:])
}

type Counts struct {
	Home int
	Draw int
	Away int
}

func (c Counts) Total() int {
	return c.Home + c.Draw + c.Away
}

// Stats is the public summary of a match's predictions. Percentages are
// rounded to the nearest integer and are all zero without votes.
type Stats struct {
	MatchID     string
	Counts      Counts
	TotalVotes  int
	HomePercent int
	DrawPercent int
	AwayPercent int
}

func Summarize(matchID string, counts Counts) Stats {
	total := counts.Total()
	return Stats{
		MatchID:     matchID,
		Counts:      counts,
		TotalVotes:  total,
		HomePercent: percent(counts.Home, total),
		DrawPercent: percent(counts.Draw, total),
		AwayPercent: percent(counts.Away, total),
	}
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}
