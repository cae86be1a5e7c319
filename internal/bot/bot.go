package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/logger"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

// Bot связывает Telegram API с диспетчером
type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *Dispatcher
	log        *logger.Logger
}

// New создает нового бота
func New(token string, dispatcher *Dispatcher, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	log.Info("Авторизация пройдена", "username", api.Self.UserName)

	return &Bot{
		api:        api,
		dispatcher: dispatcher,
		log:        log,
	}, nil
}

// Start запускает обработку обновлений
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate обрабатывает входящее обновление
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := b.log.With("turn_id", uuid.NewString())

	if update.CallbackQuery != nil {
		b.handleCallback(ctx, log, update.CallbackQuery)
		return
	}
	if update.Message != nil {
		b.handleMessage(ctx, log, update.Message)
	}
}

// handleMessage обрабатывает текстовые сообщения
func (b *Bot) handleMessage(ctx context.Context, log *logger.Logger, msg *tgbotapi.Message) {
	command, text := "", msg.Text
	if msg.IsCommand() {
		command = msg.Command()
		text = msg.CommandArguments()
	}

	log.Debug("Входящее сообщение", "user_id", msg.From.ID, "command", command)

	reply := b.dispatcher.HandleMessage(ctx, msg.From.ID, command, text)
	b.send(log, msg.Chat.ID, reply)
}

// handleCallback обрабатывает нажатия на inline-кнопки
func (b *Bot) handleCallback(ctx context.Context, log *logger.Logger, callback *tgbotapi.CallbackQuery) {
	// Отвечаем на callback чтобы убрать "часики"
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Warn("Не удалось ответить на callback", "error", err)
	}

	log.Debug("Входящий callback", "user_id", callback.From.ID, "data", callback.Data)

	reply := b.dispatcher.HandleCallback(ctx, callback.From.ID, callback.Data)
	b.send(log, callback.Message.Chat.ID, reply)
}

// send переводит Reply в сообщения Telegram
func (b *Bot) send(log *logger.Logger, chatID int64, reply models.Reply) {
	if reply.Empty() {
		return
	}

	if len(reply.Photo) > 0 {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: reply.Photo})
		photo.Caption = reply.Caption
		if _, err := b.api.Send(photo); err != nil {
			log.Error("Не удалось отправить изображение", "error", err)
		}
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	if len(reply.Buttons) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Buttons))
		for _, btn := range reply.Buttons {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data),
			))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Error("Не удалось отправить сообщение", "error", err)
	}
}
