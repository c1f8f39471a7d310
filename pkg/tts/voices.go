package tts

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrVoiceNotFound = errors.New("voice not found")

// NoArabicVoiceAdvisory is shown when the engine reports no Arabic voice.
const NoArabicVoiceAdvisory = "لا توجد أصوات عربية متاحة على هذا الجهاز، سيتم استخدام الصوت الافتراضي."

type Voice struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Locale    string   `json:"locale"`
	Languages []string `json:"languages,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Provider  string   `json:"provider"`
}

func (v Voice) String() string {
	if v.Locale == "" {
		return v.Name
	}
	return fmt.Sprintf("%s (%s)", v.Name, v.Locale)
}

// IsArabic reports whether the voice locale or name indicates Arabic support.
func (v Voice) IsArabic() bool {
	if languageCode(v.Locale) == "ar" {
		return true
	}
	for _, lang := range v.Languages {
		if languageCode(lang) == "ar" {
			return true
		}
	}
	name := strings.ToLower(v.Name)
	return strings.Contains(name, "arab") || strings.Contains(name, "عرب")
}

func FilterArabic(voices []Voice) []Voice {
	arabic := make([]Voice, 0, len(voices))
	for _, v := range voices {
		if v.IsArabic() {
			arabic = append(arabic, v)
		}
	}
	return arabic
}

// VoiceSelection holds the Arabic voices of an engine and the one the user
// picked for the current session.
type VoiceSelection struct {
	mu        sync.RWMutex
	available []Voice
	selected  *Voice
}

func NewVoiceSelection(voices []Voice) *VoiceSelection {
	return &VoiceSelection{available: FilterArabic(voices)}
}

func (s *VoiceSelection) Available() []Voice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Voice, len(s.available))
	copy(out, s.available)
	return out
}

// Advisory is non-empty when no Arabic voice is available.
func (s *VoiceSelection) Advisory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.available) == 0 {
		return NoArabicVoiceAdvisory
	}
	return ""
}

// Select picks a voice by id or name, case-insensitively.
func (s *VoiceSelection) Select(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	for i, v := range s.available {
		if strings.EqualFold(v.ID, name) || strings.EqualFold(v.Name, name) {
			picked := s.available[i]
			s.selected = &picked
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrVoiceNotFound, name)
}

// Selected returns the picked voice; ok is false when the engine default is used.
func (s *VoiceSelection) Selected() (Voice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return Voice{}, false
	}
	return *s.selected, true
}

// VoicePtr is the selected voice as an utterance expects it.
func (s *VoiceSelection) VoicePtr() *Voice {
	v, ok := s.Selected()
	if !ok {
		return nil
	}
	return &v
}

func (s *VoiceSelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}
