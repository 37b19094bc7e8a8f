package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
)

// Embed colors
const (
	colorGreen = 0x2ecc71
	colorGold  = 0xf1c40f
	colorBlue  = 0x3498db
)

const footerText = "Pokemonkey Reklamasi"

// WebhookExecutor is the subset of *discordgo.Session used to post messages.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts team-visible milestones to a Discord channel webhook.
type DiscordNotifier struct {
	executor  WebhookExecutor
	webhookID string
	token     string
}

// NewDiscordSession creates an unauthenticated session; webhook execution
// only needs the webhook's own token.
func NewDiscordSession() (*discordgo.Session, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return s, nil
}

// NewDiscordNotifier creates a notifier posting through executor.
func NewDiscordNotifier(executor WebhookExecutor, webhookID, token string) *DiscordNotifier {
	return &DiscordNotifier{executor: executor, webhookID: webhookID, token: token}
}

// Register subscribes the notifier to the events it announces.
func (n *DiscordNotifier) Register(bus event.Bus) {
	bus.Subscribe(event.MissionCompleted, n.handleMissionCompleted)
	bus.Subscribe(event.LevelUp, n.handleLevelUp)
	bus.Subscribe(event.SkinPurchased, n.handleSkinPurchased)
}

func (n *DiscordNotifier) handleMissionCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.MissionPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", evt.Type, err)
	}
	return n.send(ctx, evt, &discordgo.MessageEmbed{
		Title:       "🌳 " + MissionComplete(p.Title),
		Description: fmt.Sprintf("%s menyelesaikan misi **%s**.", displayName(p.FullName, evt.UserID), p.Title),
		Color:       colorGreen,
	})
}

func (n *DiscordNotifier) handleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", evt.Type, err)
	}
	return n.send(ctx, evt, &discordgo.MessageEmbed{
		Title:       "⭐ " + LevelUp(p.NewLevel),
		Description: fmt.Sprintf("%s naik dari level %d ke level %d (%d XP).", displayName(p.FullName, evt.UserID), p.OldLevel, p.NewLevel, p.XP),
		Color:       colorGold,
	})
}

func (n *DiscordNotifier) handleSkinPurchased(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.SkinPurchasedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", evt.Type, err)
	}
	return n.send(ctx, evt, &discordgo.MessageEmbed{
		Title:       "🐒 " + SkinBought(p.Name),
		Description: fmt.Sprintf("%s membeli %s seharga %d XP.", evt.UserID, p.Name, p.Cost),
		Color:       colorBlue,
	})
}

func (n *DiscordNotifier) send(ctx context.Context, evt event.Event, embed *discordgo.MessageEmbed) error {
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footerText}
	embed.Timestamp = evt.Timestamp.Format("2006-01-02T15:04:05Z07:00")

	_, err := n.executor.WebhookExecute(n.webhookID, n.token, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	if err != nil {
		logger.FromContext(ctx).Warn("Discord webhook failed", "event_type", evt.Type, "error", err)
		return fmt.Errorf("discord webhook: %w", err)
	}
	slog.Debug("Discord notification sent", "event_type", evt.Type, "user_id", evt.UserID)
	return nil
}

func displayName(fullName, userID string) string {
	if fullName != "" {
		return fullName
	}
	return userID
}
