// Package assistant is the chat screen: a canned-reply bot that answers by
// keyword after a short typing pause.
package assistant

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultTypingDelay is how long the bot "types" before replying.
const DefaultTypingDelay = 1500 * time.Millisecond

const (
	Greeting     = "أهلاً بك! أنا مساعدك الذكي. يمكنك سؤالي عن أي شيء أو طلب كتابة قصة."
	DefaultReply = "سؤال مثير للاهتمام! سأبحث لك عن معلومات حول هذا الموضوع..."
)

type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

type Message struct {
	ID     int    `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

type rule struct {
	keywords []string
	reply    string
}

// checked in order, first match wins
var rules = []rule{
	{keywords: []string{"قصة", "حكاية"}, reply: "فكرة رائعة! ما رأيك في قصة عن الفضاء أم الغابة؟"},
	{keywords: []string{"حزين", "متضايق"}, reply: "أنا هنا لأجلك. هل تود سماع موسيقى هادئة أو قصة لطيفة لتغيير مزاجك؟"},
	{keywords: []string{"مرحبا", "هلا"}, reply: "أهلاً بك يا صديقي! كيف يمكنني مساعدتك اليوم؟"},
	{keywords: []string{"شكرا"}, reply: "على الرحب والسعة! أنا دائماً في الخدمة."},
}

// Reply picks the canned answer for text.
func Reply(text string) string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.reply
			}
		}
	}
	return DefaultReply
}

// Conversation is the message history of one chat screen.
type Conversation struct {
	TypingDelay time.Duration

	mu       sync.Mutex
	messages []Message
	nextID   int
}

func NewConversation(typingDelay time.Duration) *Conversation {
	return &Conversation{
		TypingDelay: typingDelay,
		messages:    []Message{{ID: 1, Sender: SenderBot, Text: Greeting}},
		nextID:      2,
	}
}

func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) add(sender Sender, text string) Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := Message{ID: c.nextID, Sender: sender, Text: text}
	c.nextID++
	c.messages = append(c.messages, m)
	return m
}

// Send records the user's message, waits for the typing delay and records the
// bot's reply. Blank input is ignored: ok is false and nothing is recorded.
func (c *Conversation) Send(ctx context.Context, text string) (reply Message, ok bool, err error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false, nil
	}
	c.add(SenderUser, text)

	if c.TypingDelay > 0 {
		timer := time.NewTimer(c.TypingDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Message{}, false, ctx.Err()
		case <-timer.C:
		}
	}

	return c.add(SenderBot, Reply(text)), true, nil
}
