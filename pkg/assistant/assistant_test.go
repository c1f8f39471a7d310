package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReply(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"story request", "احكي لي قصة", "فكرة رائعة! ما رأيك في قصة عن الفضاء أم الغابة؟"},
		{"sad", "أنا حزين اليوم", "أنا هنا لأجلك. هل تود سماع موسيقى هادئة أو قصة لطيفة لتغيير مزاجك؟"},
		{"greeting", "مرحبا", "أهلاً بك يا صديقي! كيف يمكنني مساعدتك اليوم؟"},
		{"thanks", "شكرا جزيلا", "على الرحب والسعة! أنا دائماً في الخدمة."},
		{"first rule wins", "مرحبا، أريد حكاية", "فكرة رائعة! ما رأيك في قصة عن الفضاء أم الغابة؟"},
		{"default", "كم الساعة؟", DefaultReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reply(tt.text))
		})
	}
}

func TestConversation_Send(t *testing.T) {
	c := NewConversation(0)

	reply, ok, err := c.Send(context.Background(), "شكرا")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, SenderBot, reply.Sender)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, Greeting, msgs[0].Text)
	assert.Equal(t, Message{ID: 2, Sender: SenderUser, Text: "شكرا"}, msgs[1])
	assert.Equal(t, 3, msgs[2].ID)
}

func TestConversation_IgnoresBlank(t *testing.T) {
	c := NewConversation(0)

	_, ok, err := c.Send(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, c.Messages(), 1)
}

func TestConversation_CanceledWhileTyping(t *testing.T) {
	c := NewConversation(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := c.Send(ctx, "مرحبا")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Len(t, c.Messages(), 2, "the user message stays, the reply never comes")
}
