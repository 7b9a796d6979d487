package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hungerscrm/internal/models"
)

// TelegramService posts backup and new-deal notices to a single chat.
// A nil service means notifications are off.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) *TelegramService {
	if botToken == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg] bot init failed, notifications disabled: %v", err)
		return nil
	}
	return &TelegramService{bot: bot, chatID: chatID}
}

func (t *TelegramService) SendMessage(text string) error {
	if t == nil || t.bot == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func (t *TelegramService) NotifyNewDeal(deal *models.Deal) error {
	if t == nil {
		return nil
	}
	return t.SendMessage(fmt.Sprintf("🆕 Nuevo trato: %s (%s) — $%.0f USD, %s",
		deal.Title, deal.Organization, deal.Value, models.SellerName(deal.SellerID)))
}
