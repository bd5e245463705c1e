package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"clubfit_backend/internals/configs"
	"clubfit_backend/internals/features/schedules/model"
	"clubfit_backend/internals/features/schedules/service"
	helper "clubfit_backend/internals/helpers"
)

// ── ENTRYPOINT: chamado do main.go depois que o DB sobe
func StartActivationCron(svc *service.LifecycleService) *cron.Cron {
	schedule := configs.ActivationCron

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		RunActivationSweep(ctx, svc, time.Now())
	})
	if err != nil {
		log.Fatalf("[ACTIVATION-CRON] add cron falhou: %v", err)
	}
	log.Printf("[ACTIVATION-CRON] started schedule=%q", schedule)
	c.Start()
	return c
}

// RunActivationSweep promove toda grade APROVADA com ativação agendada
// já vencida, pelo MESMO caminho da ativação manual: as invariantes
// (único ATIVO, diff, e-mail) valem igual para as duas vias.
// Cada grade é processada de forma independente: uma falha não para o lote.
func RunActivationSweep(ctx context.Context, svc *service.LifecycleService, now time.Time) {
	due, err := svc.DueForActivation(ctx, now)
	if err != nil {
		log.Printf("[ACTIVATION-CRON] busca de grades vencidas falhou: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}
	log.Printf("[ACTIVATION-CRON] %d grade(s) com ativação vencida", len(due))

	actor := helper.SystemActor()
	for _, schedule := range due {
		note := "Ativação automática: data agendada atingida"
		if _, err := svc.ChangeStatus(ctx, schedule.ClassScheduleID, model.StatusAtivo, &note, nil, actor); err != nil {
			log.Printf("[ACTIVATION-CRON] ativar grade %s falhou: %v", schedule.ClassScheduleID, err)
			continue
		}
		log.Printf("[ACTIVATION-CRON] grade %s (%q) ativada", schedule.ClassScheduleID, schedule.ClassScheduleTitle)
	}
}
