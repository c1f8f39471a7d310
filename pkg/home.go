package pkg

import (
	"fmt"
	"io"
	"time"

	"github.com/andrejsstepanovs/rawi/pkg/story"
	"github.com/andrejsstepanovs/rawi/pkg/theme"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const homePoints = 1250

// Greeting is the home screen salutation for the time of day.
func Greeting(now time.Time) string {
	if now.Hour() < 12 {
		return "صباح الخير،"
	}
	return "مساء الخير،"
}

func formatPoints(points int) string {
	return message.NewPrinter(language.English).Sprintf("%d", points)
}

type homeView struct {
	now     time.Time
	stories int
	wisdom  story.Wisdom
}

func renderHome(w io.Writer, t theme.Theme, v homeView) {
	fmt.Fprintln(w, t.Dim("%s", Greeting(v.now)))
	fmt.Fprintln(w, t.Title("صديق راوي 👋"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", t.Body("نقاطك اليوم:"), t.Highlight("%s", formatPoints(homePoints)))
	fmt.Fprintf(w, "%s %s\n", t.Body("قصص المكتبة:"), t.Highlight("%d", v.stories))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s  %s\n", t.Highlight("📖 أكمل القصة"), t.Dim("/stories"))
	fmt.Fprintf(w, "%s  %s\n", t.Highlight("📅 جدولي اليوم"), t.Dim("/briefing"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Title("❤ كلمة اليوم"))
	fmt.Fprintln(w, t.Body("%q", v.wisdom.Text))
}
