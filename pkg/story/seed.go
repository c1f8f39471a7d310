package story

// SeedStoryID identifies the built-in story every library starts with.
const SeedStoryID = "omar-school-gate"

func SeedStory() Story {
	return Story{
		ID:    SeedStoryID,
		Title: "عمر وبوابة المدرسة",
		Genre: GenreSchool,
		Brief: "عمر يواجه يومه الأول في المدرسة",
		Scenes: Scenes{
			{Speaker: Narrator, Text: "في صباح يوم مشمس، وقف عمر أمام بوابة المدرسة الكبيرة."},
			{Speaker: "عمر", Text: "يا إلهي! إنها تبدو ضخمة جداً، هل سأضيع في الداخل؟", Emotion: EmotionNervous},
			{Speaker: "المعلمة", Text: "أهلاً بك يا عمر! لا تقلق، فالمدرسة مكان للأصدقاء والمرح.", Emotion: EmotionWarm},
			{Speaker: Narrator, Text: "ابتسم عمر وشعر بالاطمئنان، وأمسك بيد المعلمة ودخل."},
		},
	}
}
