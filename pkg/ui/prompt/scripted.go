package prompt

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
)

// Answer is one scripted response
type Answer struct {
	Text    string
	Confirm bool
	Choice  int
	Err     error
}

// Scripted is a Prompter that replays queued answers in order. It is used by
// tests and by non-interactive callers. Asking more questions than queued is
// an error naming the question.
type Scripted struct {
	mu      sync.Mutex
	answers []Answer
	asked   []string
}

// NewScripted queues answers
func NewScripted(answers ...Answer) *Scripted {
	return &Scripted{answers: answers}
}

// Text queues a text answer; "" accepts the default
func Text(s string) Answer { return Answer{Text: s} }

// Yes queues an affirmative confirmation
func Yes() Answer { return Answer{Confirm: true} }

// No queues a negative confirmation
func No() Answer { return Answer{Confirm: false} }

// Choose queues a selection by index
func Choose(i int) Answer { return Answer{Choice: i} }

// Asked returns the titles of the questions asked so far
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// Remaining returns how many answers were not consumed
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

func (s *Scripted) next(title string) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, title)
	if len(s.answers) == 0 {
		return Answer{}, errors.Newf(errors.ErrCancelled, "no scripted answer for %q", title)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, a.Err
}

// Input implements Prompter
func (s *Scripted) Input(title, def string, validate func(string) error) (string, error) {
	a, err := s.next(title)
	if err != nil {
		return "", err
	}
	value := orDefault(a.Text, def)
	if validate != nil {
		if err := validate(value); err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid answer to %q", title)
		}
	}
	return value, nil
}

// Confirm implements Prompter
func (s *Scripted) Confirm(title string, def bool) (bool, error) {
	a, err := s.next(title)
	if err != nil {
		return false, err
	}
	return a.Confirm, nil
}

// Select implements Prompter
func (s *Scripted) Select(title string, options []string) (int, error) {
	a, err := s.next(title)
	if err != nil {
		return 0, err
	}
	if a.Choice < 0 || a.Choice >= len(options) {
		return 0, errors.New(errors.ErrInvalidInput, fmt.Sprintf("choice %d out of range for %q", a.Choice, title))
	}
	return a.Choice, nil
}
