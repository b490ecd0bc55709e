// Package message resolves the bot copy shown to a tenant's customers:
// a tenant-specific override when one exists, the global template
// otherwise. Templates are shared by every tenant and never mutated by
// tenant edits.
package message

import (
	"context"
	"errors"

	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"gorm.io/gorm"
)

// Message is the resolved copy for one bot message type. IsOverride lets
// the UI label customized entries.
type Message struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	IsOverride bool   `json:"is_override"`
}

// Resolver looks up bot copy with override-over-template precedence.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a resolver around the database handle.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve returns the tenant's copy for one message type: the override
// when present, the global template otherwise.
func (r *Resolver) Resolve(ctx context.Context, tc tenant.Context, msgType string) (Message, error) {
	if !model.ValidMessageType(msgType) {
		return Message{}, apperr.Newf(apperr.KindValidation, "unknown message type %q", msgType)
	}

	var override model.MessageOverride
	err := tenant.Scoped(r.db.WithContext(ctx), tc).
		Where("type = ?", msgType).
		First(&override).Error
	if err == nil {
		return Message{Type: msgType, Text: override.Text, IsOverride: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Message{}, apperr.Wrap(apperr.KindUpstream, "loading message override", err)
	}

	var template model.MessageTemplate
	if err := r.db.WithContext(ctx).Where("type = ?", msgType).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Message{}, apperr.Newf(apperr.KindNotFound, "no template for message type %q", msgType)
		}
		return Message{}, apperr.Wrap(apperr.KindUpstream, "loading message template", err)
	}
	return Message{Type: msgType, Text: template.Text}, nil
}

// ResolveAll returns one resolved message per template, in template order.
func (r *Resolver) ResolveAll(ctx context.Context, tc tenant.Context) ([]Message, error) {
	var templates []model.MessageTemplate
	if err := r.db.WithContext(ctx).Order("id asc").Find(&templates).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "loading message templates", err)
	}

	var overrides []model.MessageOverride
	err := tenant.Scoped(r.db.WithContext(ctx), tc).Find(&overrides).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "loading message overrides", err)
	}

	return Merge(templates, overrides), nil
}

// Save stores the tenant's copy for a message type: the first save
// creates an override row, later saves update it in place. The template
// row is never touched.
func (r *Resolver) Save(ctx context.Context, tc tenant.Context, msgType, text string) (Message, error) {
	if !model.ValidMessageType(msgType) {
		return Message{}, apperr.Newf(apperr.KindValidation, "unknown message type %q", msgType)
	}
	if text == "" {
		return Message{}, apperr.New(apperr.KindValidation, "message text is required")
	}

	var override model.MessageOverride
	err := tenant.Scoped(r.db.WithContext(ctx), tc).
		Where("type = ?", msgType).
		First(&override).Error

	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).Model(&override).Update("text", text).Error; err != nil {
			return Message{}, apperr.Wrap(apperr.KindUpstream, "updating message override", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		override = model.MessageOverride{TenantID: tc.TenantID, Type: msgType, Text: text}
		if err := r.db.WithContext(ctx).Create(&override).Error; err != nil {
			return Message{}, apperr.Wrap(apperr.KindUpstream, "creating message override", err)
		}
	default:
		return Message{}, apperr.Wrap(apperr.KindUpstream, "loading message override", err)
	}

	return Message{Type: msgType, Text: text, IsOverride: true}, nil
}

// Merge combines templates with a tenant's overrides: each template
// yields one message, replaced by the override of the same type when one
// exists. Overrides without a matching template are ignored.
func Merge(templates []model.MessageTemplate, overrides []model.MessageOverride) []Message {
	byType := make(map[string]string, len(overrides))
	for _, o := range overrides {
		byType[o.Type] = o.Text
	}

	messages := make([]Message, 0, len(templates))
	for _, t := range templates {
		if text, ok := byType[t.Type]; ok {
			messages = append(messages, Message{Type: t.Type, Text: text, IsOverride: true})
			continue
		}
		messages = append(messages, Message{Type: t.Type, Text: t.Text})
	}
	return messages
}

// SeedTemplates inserts the default global templates when the table is
// empty, so a fresh database resolves sensible copy for every tenant.
func SeedTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.MessageTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []model.MessageTemplate{
		{Type: model.MessageWelcome, Text: "¡Hola! Bienvenido, ¿qué te provoca hoy? 🍽️"},
		{Type: model.MessageFarewellPurchase, Text: "¡Gracias por tu pedido! Estará listo pronto 🛵"},
		{Type: model.MessageFarewellNoPurchase, Text: "¡Hasta luego! Vuelve pronto 👋"},
	}
	return db.Create(&defaults).Error
}
