package telegram

import "gopkg.in/telebot.v3"

// Client sends chat messages. The broadcast service depends on this
// instead of *telebot.Bot so it can run against a fake in tests.
type Client interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) error
}
