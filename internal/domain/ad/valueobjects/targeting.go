package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// MaxExcludedUsers bounds the per-ad exclusion list.
const MaxExcludedUsers = 10000

// Targeting narrows which bots and audiences an ad may reach. The zero value
// matches everything.
type Targeting struct {
	aiSegments      []string
	specificBotIDs  []uint
	excludedUserIDs []int64
	languages       []string
}

func NewTargeting(aiSegments []string, specificBotIDs []uint, excludedUserIDs []int64, languages []string) (Targeting, error) {
	if len(excludedUserIDs) > MaxExcludedUsers {
		return Targeting{}, fmt.Errorf("exclusion list exceeds %d users", MaxExcludedUsers)
	}

	segments := make([]string, 0, len(aiSegments))
	for _, s := range aiSegments {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			return Targeting{}, fmt.Errorf("ai segment slug cannot be empty")
		}
		segments = append(segments, s)
	}

	langs := make([]string, 0, len(languages))
	for _, l := range languages {
		l = normalizeLanguage(l)
		if l == "" {
			return Targeting{}, fmt.Errorf("language code cannot be empty")
		}
		langs = append(langs, l)
	}

	return Targeting{
		aiSegments:      segments,
		specificBotIDs:  append([]uint(nil), specificBotIDs...),
		excludedUserIDs: append([]int64(nil), excludedUserIDs...),
		languages:       langs,
	}, nil
}

// IsEmpty reports whether the targeting matches everything.
func (t Targeting) IsEmpty() bool {
	return len(t.aiSegments) == 0 && len(t.specificBotIDs) == 0 &&
		len(t.excludedUserIDs) == 0 && len(t.languages) == 0
}

func (t Targeting) AISegments() []string {
	return append([]string(nil), t.aiSegments...)
}

func (t Targeting) SpecificBotIDs() []uint {
	return append([]uint(nil), t.specificBotIDs...)
}

func (t Targeting) ExcludedUserIDs() []int64 {
	return append([]int64(nil), t.excludedUserIDs...)
}

func (t Targeting) Languages() []string {
	return append([]string(nil), t.languages...)
}

func (t Targeting) HasSpecificBots() bool {
	return len(t.specificBotIDs) > 0
}

// MatchesBot reports whether the ad may serve on the bot. An empty bot list
// matches every bot.
func (t Targeting) MatchesBot(botID uint) bool {
	if len(t.specificBotIDs) == 0 {
		return true
	}
	for _, id := range t.specificBotIDs {
		if id == botID {
			return true
		}
	}
	return false
}

// IsUserExcluded reports whether the Telegram user is on the exclusion list.
func (t Targeting) IsUserExcluded(telegramUserID int64) bool {
	for _, id := range t.excludedUserIDs {
		if id == telegramUserID {
			return true
		}
	}
	return false
}

// MatchesLanguage reports whether a viewer language code passes the language
// filter. An empty filter matches every language; comparison is on the
// primary subtag, so "en-US" matches "en".
func (t Targeting) MatchesLanguage(code string) bool {
	if len(t.languages) == 0 {
		return true
	}
	code = normalizeLanguage(code)
	if code == "" {
		return false
	}
	for _, l := range t.languages {
		if l == code {
			return true
		}
	}
	return false
}

// normalizeLanguage reduces a BCP 47 tag to its primary language subtag,
// so "en-US", "EN" and "eng" all compare as "en". Unparseable input falls
// back to a lowercase prefix cut.
func normalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if tag, err := language.Parse(code); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	code = strings.ToLower(code)
	if i := strings.IndexByte(code, '-'); i >= 0 {
		code = code[:i]
	}
	// anything but letters after the cut is garbage, not a language code
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return code
}

// ReconstructTargeting rebuilds targeting from persistence without validation.
func ReconstructTargeting(aiSegments []string, specificBotIDs []uint, excludedUserIDs []int64, languages []string) Targeting {
	return Targeting{
		aiSegments:      aiSegments,
		specificBotIDs:  specificBotIDs,
		excludedUserIDs: excludedUserIDs,
		languages:       languages,
	}
}
