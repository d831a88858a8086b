package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func fakeBot(t *testing.T) (*tgbotapi.BotAPI, *map[string][]string) {
	t.Helper()
	captured := map[string][]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"planner","username":"planner_bot"}}`))
			return
		}
		for k, v := range r.PostForm {
			captured[k] = v
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("NewBotAPIWithAPIEndpoint: %v", err)
	}
	return bot, &captured
}

func TestNotifyStageDone_ThreadTargetedViaRawParams(t *testing.T) {
	bot, form := fakeBot(t)
	n := &TelegramNotifier{bot: bot, chatID: -1001234567890, threadID: 4}

	err := n.NotifyStageDone(context.Background(), "lab-testing1", "JC-001", "Lab Testing 1 completed: Passed")
	if err != nil {
		t.Fatalf("NotifyStageDone() error: %v", err)
	}

	got := *form
	if got["chat_id"] == nil || got["chat_id"][0] != "-1001234567890" {
		t.Fatalf("form = %v, want chat_id -1001234567890", got)
	}
	if got["message_thread_id"] == nil || got["message_thread_id"][0] != "4" {
		t.Fatalf("form = %v, want message_thread_id 4", got)
	}
	if got["text"] == nil || !strings.Contains(got["text"][0], "JC-001") {
		t.Fatalf("form = %v, want text mentioning the job card", got)
	}
}

func TestNotifyStageDone_PlainChatWithoutThread(t *testing.T) {
	bot, form := fakeBot(t)
	n := &TelegramNotifier{bot: bot, chatID: -1001234567890, threadID: 0}

	err := n.NotifyStageDone(context.Background(), "tally", "JC-002", "Tally completed")
	if err != nil {
		t.Fatalf("NotifyStageDone() error: %v", err)
	}

	got := *form
	if _, present := got["message_thread_id"]; present {
		t.Fatalf("form = %v, want no message_thread_id without a topic", got)
	}
	if got["text"] == nil || !strings.Contains(got["text"][0], "JC-002") {
		t.Fatalf("form = %v, want text mentioning the job card", got)
	}
}

func TestNotifyStageDone_DisabledNotifierNoops(t *testing.T) {
	n := &TelegramNotifier{}
	if err := n.NotifyStageDone(context.Background(), "check", "JC-003", "done"); err != nil {
		t.Fatalf("NotifyStageDone() on disabled notifier error: %v", err)
	}
}
