// Package tokenizer counts and encodes prompt text with OpenAI-style BPE
// encodings, used by architectures that condition their processing on a
// text prompt.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the encoding used when no model name is configured.
// cl100k_base covers GPT-4 and GPT-3.5-turbo.
const DefaultEncoding = "cl100k_base"

// Tokenizer wraps a tiktoken encoding.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// New creates a Tokenizer with the named encoding, for example
// "cl100k_base" or "p50k_base".
func New(encodingName string) (*Tokenizer, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encodingName, err)
	}
	return &Tokenizer{encoding: encoding, name: encodingName}, nil
}

// ForModel creates a Tokenizer with the encoding a named model uses, for
// example "gpt-4" or "text-embedding-ada-002".
func ForModel(modelName string) (*Tokenizer, error) {
	encoding, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken for model %q: %w", modelName, err)
	}
	return &Tokenizer{encoding: encoding, name: modelName}, nil
}

// Name returns the encoding or model name the Tokenizer was created with.
func (t *Tokenizer) Name() string {
	return t.name
}

// Encode converts text to token IDs.
func (t *Tokenizer) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.Encode(text))
}
