// Package buzzword holds the trivia deck the dashboard's challenge page
// draws from. Data only; card presentation belongs to the UI.
package buzzword

import "math/rand"

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Expert Difficulty = "Expert"
)

type Card struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	FunFact    string `json:"fun_fact"`
}

var decks = map[Difficulty][]Card{
	Easy: {
		{
			Term:       "AI",
			Definition: "Artificial Intelligence: systems designed to perform tasks that typically require human intelligence.",
			FunFact:    "The term 'Artificial Intelligence' was coined in 1956 at the Dartmouth Conference.",
		},
		{
			Term:       "Chatbot",
			Definition: "A computer program that simulates conversation with users.",
			FunFact:    "ELIZA, one of the first chatbots, was built in 1966.",
		},
		{
			Term:       "Machine Learning",
			Definition: "A type of AI where systems learn patterns from data instead of being explicitly programmed.",
			FunFact:    "Netflix uses ML to recommend shows based on your watch history.",
		},
	},
	Medium: {
		{
			Term:       "Neural Network",
			Definition: "A system of algorithms designed to recognize patterns by mimicking how the human brain works.",
			FunFact:    "Deep neural networks power image recognition in self-driving cars.",
		},
		{
			Term:       "Prompt Engineering",
			Definition: "The practice of crafting effective inputs (prompts) to guide AI models' outputs.",
			FunFact:    "Good prompt engineering can drastically improve AI performance without changing the model.",
		},
		{
			Term:       "Generative AI",
			Definition: "AI that can create new content, like text, images, or music, based on learned patterns.",
			FunFact:    "DALL·E, from OpenAI, can generate original art from text prompts.",
		},
	},
	Expert: {
		{
			Term:       "LLM",
			Definition: "Large Language Model: a type of AI trained on massive text datasets to generate human-like text.",
			FunFact:    "GPT-4 reportedly has hundreds of billions of parameters.",
		},
		{
			Term:       "Reinforcement Learning",
			Definition: "An AI training method where agents learn by trial and error, receiving rewards or penalties.",
			FunFact:    "DeepMind's AlphaGo used reinforcement learning to defeat human Go champions.",
		},
		{
			Term:       "Transformers",
			Definition: "A deep learning architecture that powers most modern LLMs by using attention mechanisms.",
			FunFact:    "The 2017 paper 'Attention is All You Need' introduced Transformers, revolutionizing AI.",
		},
	},
}

// Difficulties lists the deck levels in play order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Expert}
}

// Deck returns a copy of the cards for a difficulty.
func Deck(d Difficulty) ([]Card, bool) {
	cards, ok := decks[d]
	if !ok {
		return nil, false
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out, true
}

// Draw returns up to n cards from the difficulty's deck in shuffled order.
// An unknown difficulty yields nil.
func Draw(d Difficulty, n int, rng *rand.Rand) []Card {
	cards, ok := Deck(d)
	if !ok || n < 1 {
		return nil
	}
	if rng != nil {
		rng.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
	}
	if n > len(cards) {
		n = len(cards)
	}
	return cards[:n]
}
