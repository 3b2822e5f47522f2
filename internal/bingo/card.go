package bingo

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// CardSize is the number of cells on a card (3x3 grid).
const CardSize = 9

// Vocabulary is the fixed pool of concepts cards are drawn from.
var Vocabulary = []string{
	"Binary Search", "Recursion", "Big O Notation", "Hash Map", "Linked List",
	"Stack", "Queue", "Graph", "Tree", "Dynamic Programming",
	"Sorting Algorithm", "API", "Database", "SQL", "NoSQL",
	"Git", "Docker", "Kubernetes", "Cloud Computing", "Machine Learning",
	"Neural Network", "Blockchain", "Cybersecurity", "Encryption", "Firewall",
	"HTML", "CSS", "JavaScript", "React", "Node.js",
	"Python", "Java", "C++", "Compiler", "Interpreter",
	"Debugging", "Unit Testing", "Agile", "Scrum", "DevOps",
	"REST", "GraphQL", "WebSockets", "Microservices", "Serverless",
	"Virtual Machine", "Operating System", "Linux", "Network Protocol", "HTTP",
}

// NewCard draws CardSize distinct concepts from vocab in random order and
// returns fresh, unmarked cells with unique ids. Returns
// ErrSmallVocabulary when vocab cannot fill a card.
func NewCard(vocab []string) ([]Cell, error) {
	if len(vocab) < CardSize {
		return nil, ErrSmallVocabulary
	}

	shuffled := make([]string, len(vocab))
	copy(shuffled, vocab)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	card := make([]Cell, CardSize)
	for i, label := range shuffled[:CardSize] {
		card[i] = Cell{
			ID:    uuid.NewString(),
			Label: label,
		}
	}
	return card, nil
}
