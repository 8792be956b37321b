package fixture

import (
	"fmt"
	"io"
	"sync"

	"github.com/mj1618/screen-bridge/internal/platform"
)

// Utterance is one call the bridge made into the speech sink.
type Utterance struct {
	Kind      string `yaml:"kind"                json:"kind"` // speak, append, silence
	Text      string `yaml:"text,omitempty"      json:"text,omitempty"`
	Interrupt bool   `yaml:"interrupt,omitempty" json:"interrupt,omitempty"`
}

// Transcript is a Speaker that records everything it is asked to say and
// optionally echoes it to a writer.
type Transcript struct {
	mu    sync.Mutex
	lines []Utterance
	echo  io.Writer
}

// NewTranscript returns an empty transcript. echo may be nil.
func NewTranscript(echo io.Writer) *Transcript {
	return &Transcript{echo: echo}
}

func (t *Transcript) Speak(text string, interrupt bool) {
	t.add(Utterance{Kind: "speak", Text: text, Interrupt: interrupt})
}

func (t *Transcript) SpeakAppend(text string) {
	t.add(Utterance{Kind: "append", Text: text})
}

func (t *Transcript) Silence() {
	t.add(Utterance{Kind: "silence"})
}

func (t *Transcript) add(u Utterance) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, u)
	if t.echo != nil {
		switch u.Kind {
		case "silence":
			fmt.Fprintln(t.echo, "[silence]")
		case "append":
			fmt.Fprintf(t.echo, "+ %s\n", u.Text)
		default:
			fmt.Fprintln(t.echo, u.Text)
		}
	}
}

// Utterances returns a copy of everything recorded so far.
func (t *Transcript) Utterances() []Utterance {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Utterance(nil), t.lines...)
}

// Texts returns the text of every speak and append call, in order.
func (t *Transcript) Texts() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []string
	for _, u := range t.lines {
		if u.Kind != "silence" {
			out = append(out, u.Text)
		}
	}
	return out
}

// Last returns the most recent spoken text, or "".
func (t *Transcript) Last() string {
	texts := t.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// Reset drops the recorded utterances.
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = nil
}

// Click is one recorded pointer click.
type Click struct {
	X      int                  `yaml:"x"      json:"x"`
	Y      int                  `yaml:"y"      json:"y"`
	Button platform.MouseButton `yaml:"button" json:"button"`
	Count  int                  `yaml:"count"  json:"count"`
}

// RecordingInputter is an Inputter that records pointer input instead of
// moving the real cursor.
type RecordingInputter struct {
	Moves  [][2]int
	Clicks []Click

	// Err, when set, is returned from every call.
	Err error
}

func (r *RecordingInputter) MoveMouse(x, y int) error {
	if r.Err != nil {
		return r.Err
	}
	r.Moves = append(r.Moves, [2]int{x, y})
	return nil
}

func (r *RecordingInputter) Click(x, y int, button platform.MouseButton, count int) error {
	if r.Err != nil {
		return r.Err
	}
	r.Clicks = append(r.Clicks, Click{X: x, Y: y, Button: button, Count: count})
	return nil
}
