package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Actor identifica quem disparou uma operação: um usuário autenticado
// ou o próprio sistema (cron de ativação). Código de log/notificação
// decide pelo campo IsSystem em vez de duck-typing.
type Actor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsSystem bool   `json:"is_system"`
}

const systemActorName = "Sistema ClubFit"

// SystemActor é o ator sintético usado pelas transições automáticas.
func SystemActor() Actor {
	return Actor{
		ID:       "system",
		Name:     systemActorName,
		Email:    "sistema@clubfit.local",
		Role:     "system",
		IsSystem: true,
	}
}

// ActorFromContext monta o Actor a partir das claims guardadas pelo AuthMiddleware.
// Retorna 401 se não houver usuário logado.
func ActorFromContext(c *fiber.Ctx) (Actor, error) {
	id, _ := c.Locals("user_id").(string)
	if strings.TrimSpace(id) == "" {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Usuário não autenticado")
	}
	name, _ := c.Locals("user_name").(string)
	email, _ := c.Locals("user_email").(string)
	role, _ := c.Locals("user_role").(string)
	if name == "" {
		name = email
	}
	return Actor{ID: id, Name: name, Email: email, Role: role}, nil
}

// DisplayName é o nome que aparece em logs de status e e-mails.
func (a Actor) DisplayName() string {
	if a.IsSystem {
		return systemActorName
	}
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}
