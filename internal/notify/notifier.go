package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/camuig/foliowatch/internal/config"
	"github.com/camuig/foliowatch/internal/logger"
)

// Notifier pushes alert and milestone messages to Telegram. When telegram is
// disabled or misconfigured it degrades to a no-op so the engine never
// depends on it.
type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Notifier {
	if !cfg.Telegram.Enabled {
		return &Notifier{enabled: false, logger: log}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Notifier{enabled: false, logger: log}
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}
}

func (n *Notifier) AlertTriggered(ticker, direction string, target, price float64) {
	msg := fmt.Sprintf("🔔 *Price alert* %s\nCrossed %s $%.2f (now $%.2f)",
		ticker, direction, target, price)
	n.send(msg)
}

func (n *Notifier) NewAllTimeHigh(value float64) {
	msg := fmt.Sprintf("🎉 *New all-time high*\nPortfolio value: $%.2f", value)
	n.send(msg)
}

func (n *Notifier) AchievementUnlocked(name string) {
	msg := fmt.Sprintf("🏆 *Achievement unlocked*\n%s", name)
	n.send(msg)
}

func (n *Notifier) Status(message string) {
	n.send(message)
}

func (n *Notifier) send(text string) {
	if !n.enabled {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("send telegram message", "error", err)
	}
}
