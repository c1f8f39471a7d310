package story

import (
	"errors"
	"fmt"
)

// FallbackCategory is used when no template keyword matches a prompt.
const FallbackCategory = "general"

var ErrUnknownCategory = errors.New("unknown story category")

type PlotLine struct {
	Speaker string
	Text    string
	Emotion Emotion
}

type StoryTemplate struct {
	Category  string
	Keywords  []string
	Genre     Genre
	Intros    []string
	PlotLines []PlotLine
}

type StoryTemplates []StoryTemplate

// Order matters: the first template with a matching keyword wins.
var templates = StoryTemplates{
	{
		Category: "space",
		Keywords: []string{"فضاء", "الفضاء", "صاروخ", "قمر", "القمر", "نجم", "نجوم", "كوكب", "space", "rocket", "moon"},
		Genre:    GenreSciFi,
		Intros: []string{
			"في ليلة صافية مليئة بالنجوم، كان هناك حلم كبير ينتظر الانطلاق.",
			"بعيداً فوق الغيوم، حيث يلمع القمر، بدأت رحلة لا تشبه أي رحلة أخرى.",
		},
		PlotLines: []PlotLine{
			{Speaker: "رائد الفضاء", Text: "ثلاثة، اثنان، واحد... انطلق!", Emotion: EmotionExcited},
			{Speaker: Narrator, Text: "ارتفع الصاروخ عالياً حتى صارت الأرض كرة زرقاء صغيرة."},
			{Speaker: "رائد الفضاء", Text: "ما أجمل كوكبنا من هنا! علينا أن نعتني به دائماً.", Emotion: EmotionWarm},
			{Speaker: Narrator, Text: "وعاد المسافرون إلى بيوتهم وفي قلوبهم حكاية عن النجوم."},
		},
	},
	{
		Category: "forest",
		Keywords: []string{"غابة", "الغابة", "شجرة", "أسد", "الأسد", "حيوان", "أرنب", "forest", "lion"},
		Genre:    GenreAdventure,
		Intros: []string{
			"في قلب غابة خضراء كثيفة، كانت العصافير تغني كل صباح.",
			"بين الأشجار العالية، حيث تتسلل أشعة الشمس، عاشت حيوانات كثيرة معاً.",
		},
		PlotLines: []PlotLine{
			{Speaker: "الأرنب", Text: "سمعت صوتاً غريباً خلف الشجرة الكبيرة!", Emotion: EmotionNervous},
			{Speaker: "الأسد", Text: "لا تخف يا صديقي، سنكتشف الأمر معاً.", Emotion: EmotionWarm},
			{Speaker: Narrator, Text: "وتعلمت الحيوانات أن الشجاعة تكبر عندما نكون معاً."},
		},
	},
	{
		Category: "sea",
		Keywords: []string{"بحر", "البحر", "سمكة", "حورية", "محيط", "سفينة", "sea", "ocean"},
		Genre:    GenreFantasy,
		Intros: []string{
			"تحت أمواج البحر الزرقاء، كانت هناك مدينة من المرجان تضيء في الظلام.",
		},
		PlotLines: []PlotLine{
			{Speaker: "السمكة الصغيرة", Text: "هل تعرفين أين يختبئ كنز اللؤلؤ؟", Emotion: EmotionExcited},
			{Speaker: "الحورية", Text: "الكنز الحقيقي هو الأصدقاء الذين نقابلهم في الطريق.", Emotion: EmotionCalm},
			{Speaker: Narrator, Text: "وسبحت السمكة الصغيرة سعيدة بين أصدقائها الجدد."},
		},
	},
	{
		Category: "school",
		Keywords: []string{"مدرسة", "المدرسة", "معلم", "معلمة", "الصف", "دروس", "school", "teacher"},
		Genre:    GenreSchool,
		Intros: []string{
			"في صباح يوم جديد، حمل الأطفال حقائبهم وساروا نحو المدرسة.",
			"رن جرس المدرسة، وامتلأت الساحة بضحكات التلاميذ.",
		},
		PlotLines: []PlotLine{
			{Speaker: "التلميذ", Text: "لا أعرف أحداً هنا، هل سيلعب أحد معي؟", Emotion: EmotionNervous},
			{Speaker: "المعلمة", Text: "أهلاً بك! كل من في هذا الصف سيصبح صديقك.", Emotion: EmotionWarm},
			{Speaker: Narrator, Text: "وفي نهاية اليوم، عاد إلى البيت وهو يحكي عن أصدقائه الجدد."},
		},
	},
	{
		Category: FallbackCategory,
		Genre:    GenreValues,
		Intros: []string{
			"كان يا ما كان، في قديم الزمان، حكاية صغيرة تحمل درساً كبيراً.",
			"يحكى أن طفلاً فضولياً كان يسأل عن كل شيء يراه.",
		},
		PlotLines: []PlotLine{
			{Speaker: Narrator, Text: "وفي كل خطوة، كان يتعلم شيئاً جديداً عن الصدق والطيبة."},
			{Speaker: Narrator, Text: "وهكذا عرف أن الكلمة الطيبة تفتح كل الأبواب."},
		},
	},
}

// Templates returns all story templates in match order.
func Templates() StoryTemplates {
	out := make(StoryTemplates, len(templates))
	copy(out, templates)
	return out
}

func Template(category string) (StoryTemplate, error) {
	for _, t := range templates {
		if t.Category == category {
			return t, nil
		}
	}
	return StoryTemplate{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

func (t StoryTemplate) IsFallback() bool {
	return t.Category == FallbackCategory
}
