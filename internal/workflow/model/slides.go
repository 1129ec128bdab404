package model

type DeckGenerateInput struct {
	Topic string

	Provider string
	Model    string

	Temperature *float32
	MaxTokens   *int
}
