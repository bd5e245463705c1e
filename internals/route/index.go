package route

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classesRoute "clubfit_backend/internals/features/classes/route"
	classesService "clubfit_backend/internals/features/classes/service"
	notificationsRoute "clubfit_backend/internals/features/notifications/route"
	notificationsService "clubfit_backend/internals/features/notifications/service"
	schedulesRoute "clubfit_backend/internals/features/schedules/route"
	schedulesService "clubfit_backend/internals/features/schedules/service"
	usersService "clubfit_backend/internals/features/users/service"
	"clubfit_backend/internals/helpers/mailer"
	"clubfit_backend/internals/helpers/ovg"
	"clubfit_backend/internals/middlewares/auth"
)

const weeklyCacheTTL = 30 * time.Minute

// SetupRoutes monta toda a árvore de dependências e registra as rotas.
// Devolve o serviço de ciclo de vida para o main ligar o cron de ativação.
func SetupRoutes(app *fiber.App, db *gorm.DB) *schedulesService.LifecycleService {
	// ===================== SERVICES =====================
	mail := mailer.New()
	directory := usersService.NewDirectory(db)
	dispatcher := notificationsService.NewNotificationDispatcher(db, mail, directory)
	lifecycle := schedulesService.NewLifecycleService(db, dispatcher)
	weekly := classesService.NewWeeklyService(db, ovg.NewClient(), nil, weeklyCacheTTL)

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", auth.AuthMiddleware())

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a", auth.AuthMiddleware())

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Classes routes...")
	classesRoute.WeeklyPublicRoutes(public, weekly)

	log.Println("[INFO] Mounting Schedule routes...")
	schedulesRoute.ScheduleUserRoutes(private, lifecycle)
	schedulesRoute.ScheduleAdminRoutes(admin, lifecycle)

	log.Println("[INFO] Mounting Notification routes...")
	notificationsRoute.NotificationAdminRoutes(admin, dispatcher)

	return lifecycle
}
