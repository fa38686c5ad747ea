package cli

import "ultimate-quiz-service/internal/domain"

// defaultCatalog is the built-in question bank used when no catalog has been
// stored yet or the backing store is unreadable.
func defaultCatalog() domain.Catalog {
	return domain.Catalog{
		"General Knowledge": {
			Easy: []domain.Question{
				{
					Text:         "What is the capital of France?",
					Options:      []string{"London", "Berlin", "Paris", "Madrid"},
					CorrectIndex: 2,
					Explanation:  "Paris is the capital and most populous city of France.",
				},
				{
					Text:         "Which planet is known as the Red Planet?",
					Options:      []string{"Venus", "Mars", "Jupiter", "Saturn"},
					CorrectIndex: 1,
					Explanation:  "Mars is called the Red Planet due to iron oxide on its surface.",
				},
				{
					Text:         "How many continents are there?",
					Options:      []string{"5", "6", "7", "8"},
					CorrectIndex: 2,
					Explanation:  "There are 7 continents: Asia, Africa, North America, South America, Antarctica, Europe, and Australia.",
				},
			},
			Medium: []domain.Question{
				{
					Text:         "What is the largest ocean on Earth?",
					Options:      []string{"Atlantic", "Indian", "Arctic", "Pacific"},
					CorrectIndex: 3,
					Explanation:  "The Pacific Ocean is the largest ocean, covering about 46% of Earth's water surface.",
				},
				{
					Text:         "In which year did World War II end?",
					Options:      []string{"1944", "1945", "1946", "1947"},
					CorrectIndex: 1,
					Explanation:  "World War II ended in 1945 with the surrender of Japan in September.",
				},
			},
			Hard: []domain.Question{
				{
					Text:         "What is the smallest country in the world?",
					Options:      []string{"Monaco", "Vatican City", "San Marino", "Liechtenstein"},
					CorrectIndex: 1,
					Explanation:  "Vatican City is the smallest sovereign state in the world by area and population.",
				},
			},
		},
		"Science": {
			Easy: []domain.Question{
				{
					Text:         "What gas do plants absorb from the atmosphere?",
					Options:      []string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"},
					CorrectIndex: 2,
					Explanation:  "Plants absorb carbon dioxide during photosynthesis to create glucose and oxygen.",
				},
				{
					Text:         "How many bones are in the adult human body?",
					Options:      []string{"206", "208", "210", "212"},
					CorrectIndex: 0,
					Explanation:  "An adult human body has 206 bones.",
				},
			},
			Medium: []domain.Question{
				{
					Text:         "What is the chemical symbol for gold?",
					Options:      []string{"Go", "Gd", "Au", "Ag"},
					CorrectIndex: 2,
					Explanation:  "Au is the chemical symbol for gold, derived from the Latin word 'aurum'.",
				},
			},
			Hard: []domain.Question{
				{
					Text:         "What is the speed of light in vacuum?",
					Options:      []string{"299,792,458 m/s", "300,000,000 m/s", "299,800,000 m/s", "298,000,000 m/s"},
					CorrectIndex: 0,
					Explanation:  "The speed of light in vacuum is exactly 299,792,458 meters per second.",
				},
			},
		},
		"History": {
			Easy: []domain.Question{
				{
					Text:         "Who was the first President of the United States?",
					Options:      []string{"Thomas Jefferson", "George Washington", "John Adams", "Benjamin Franklin"},
					CorrectIndex: 1,
					Explanation:  "George Washington was the first President of the United States, serving from 1789 to 1797.",
				},
			},
			Medium: []domain.Question{
				{
					Text:         "In which year did the Berlin Wall fall?",
					Options:      []string{"1987", "1988", "1989", "1990"},
					CorrectIndex: 2,
					Explanation:  "The Berlin Wall fell on November 9, 1989, marking the beginning of German reunification.",
				},
			},
			Hard: []domain.Question{
				{
					Text:         "Which empire was ruled by Julius Caesar?",
					Options:      []string{"Greek Empire", "Roman Empire", "Byzantine Empire", "Ottoman Empire"},
					CorrectIndex: 1,
					Explanation:  "Julius Caesar was a Roman general and statesman who played a critical role in the Roman Republic.",
				},
			},
		},
	}
}
