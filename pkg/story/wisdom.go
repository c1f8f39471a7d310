package story

import (
	"math/rand"
)

type Wisdom struct {
	Text  string `json:"text"`
	Theme string `json:"theme"`
}

type Wisdoms []Wisdom

func GetAvailableWisdoms() Wisdoms {
	return Wisdoms{
		{
			Text:  "القراءة هي تذكرة سفرك إلى عوالم لم تزرها من قبل.",
			Theme: "القراءة",
		},
		{
			Text:  "الكلمة الطيبة صدقة، والابتسامة مفتاح القلوب.",
			Theme: "الطيبة",
		},
		{
			Text:  "من جد وجد، ومن زرع حصد.",
			Theme: "الاجتهاد",
		},
		{
			Text:  "الصديق الحقيقي يظهر وقت الضيق.",
			Theme: "الصداقة",
		},
		{
			Text:  "الصبر مفتاح الفرج.",
			Theme: "الصبر",
		},
		{
			Text:  "اطلبوا العلم من المهد إلى اللحد.",
			Theme: "التعلم",
		},
		{
			Text:  "الصدق منجاة، والكذب مهواة.",
			Theme: "الصدق",
		},
	}
}

// GetWisdomOfTheDay is the first wisdom, shown on the home screen by default.
func GetWisdomOfTheDay() Wisdom {
	return GetAvailableWisdoms()[0]
}

// GetRandomWisdoms picks up to count distinct wisdoms.
func GetRandomWisdoms(rnd *rand.Rand, count int) Wisdoms {
	wisdoms := GetAvailableWisdoms()
	if count > len(wisdoms) {
		count = len(wisdoms)
	}

	picked := make(Wisdoms, 0, count)
	for i := 0; i < count; i++ {
		randomIndex := rnd.Intn(len(wisdoms))
		picked = append(picked, wisdoms[randomIndex])
		// drop it so it is not picked twice
		wisdoms = append(wisdoms[:randomIndex], wisdoms[randomIndex+1:]...)
	}

	return picked
}
