package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"clubfit_backend/internals/features/classes/dto"
	scheduleModel "clubfit_backend/internals/features/schedules/model"
	helper "clubfit_backend/internals/helpers"
	"clubfit_backend/internals/helpers/ovg"
)

// WeeklyService monta a visão pública da semana: aulas do calendário do
// OVG mais as aulas EXPRESS da grade ATIVA, agregadas por dia.
type WeeklyService struct {
	db    *gorm.DB
	ovg   ovg.Client
	cache Cache
}

func NewWeeklyService(db *gorm.DB, client ovg.Client, cache Cache, ttl time.Duration) *WeeklyService {
	if cache == nil {
		cache = NewMemoryCache(ttl)
	}
	return &WeeklyService{db: db, ovg: client, cache: cache}
}

// WeeklyClasses devolve a semana da data de referência (chave = segunda-
// feira). Falha do calendário externo SOBE como 502: sem ele a visão
// não tem conteúdo. Dias vêm de segunda a domingo.
func (s *WeeklyService) WeeklyClasses(ctx context.Context, ref time.Time) (*dto.WeeklyClassesResponse, error) {
	monday := helper.MondayOfWeek(ref)
	key := monday.Format("2006-01-02")

	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	raw, err := s.ovg.FetchWeek(ctx, monday)
	if err != nil {
		log.Printf("[WEEKLY] calendário OVG indisponível: %v", err)
		return nil, fiber.NewError(fiber.StatusBadGateway, "Calendário de aulas indisponível no momento")
	}

	resp := &dto.WeeklyClassesResponse{
		WeekStart: key,
		Days:      make([]dto.WeeklyDayResponse, 7),
		FetchedAt: time.Now(),
	}
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		resp.Days[i] = dto.WeeklyDayResponse{
			Date:        day.Format("2006-01-02"),
			Weekday:     int(day.Weekday()),
			WeekdayName: helper.WeekdayName(int(day.Weekday())),
			Classes:     []dto.WeeklyClassResponse{},
		}
	}

	s.bucketExternal(resp, monday, raw)
	if err := s.injectExpress(ctx, resp); err != nil {
		return nil, err
	}

	for i := range resp.Days {
		classes := resp.Days[i].Classes
		sort.SliceStable(classes, func(a, b int) bool {
			sa, sb := helper.HHMMToMinutes(classes[a].StartTime), helper.HHMMToMinutes(classes[b].StartTime)
			if sa != sb {
				return sa < sb
			}
			return classes[a].Name < classes[b].Name
		})
	}

	s.cache.Set(key, resp)
	return resp, nil
}

/* ===============================
   Bucketing das aulas externas
=================================*/

func (s *WeeklyService) bucketExternal(resp *dto.WeeklyClassesResponse, monday time.Time, raw []ovg.RawClass) {
	for _, rc := range raw {
		start, err := time.Parse(time.RFC3339, rc.Start)
		if err != nil {
			log.Printf("[WEEKLY] aula %q com início inválido (descartada): %q", rc.Title, rc.Start)
			continue
		}
		end, err := time.Parse(time.RFC3339, rc.End)
		if err != nil || !end.After(start) {
			log.Printf("[WEEKLY] aula %q com término inválido (descartada): %q", rc.Title, rc.End)
			continue
		}

		idx := daysSince(monday, start)
		if idx < 0 || idx > 6 {
			continue // fora da semana pedida
		}

		duration := int(end.Sub(start).Minutes())
		resp.Days[idx].Classes = append(resp.Days[idx].Classes, dto.WeeklyClassResponse{
			Name:        rc.Title,
			Category:    classifyCategory(rc.Title, rc.Room),
			StartTime:   start.Format("15:04"),
			EndTime:     end.Format("15:04"),
			DurationMin: duration,
			Room:        rc.Room,
			Instructor:  rc.Instructor,
			Intensity:   intensityLevel(rc.IntensityText),
			Source:      dto.SourceOVG,
		})
	}
}

func daysSince(monday, t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, monday.Location())
	return int(day.Sub(monday).Hours() / 24)
}

/* ===============================
   Injeção das aulas EXPRESS
=================================*/

// injectExpress acrescenta as aulas EXPRESS da grade ATIVA, mas só nos
// dias que já têm aula externa. Dia vazio no calendário é feriado ou
// recesso, e aula avulsa num dia fechado confundiria o aluno.
func (s *WeeklyService) injectExpress(ctx context.Context, resp *dto.WeeklyClassesResponse) error {
	var active scheduleModel.ClassScheduleModel
	err := s.db.WithContext(ctx).
		Preload("Slots").
		Where("class_schedule_status = ?", scheduleModel.StatusAtivo).
		First(&active).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // sem grade ativa, nada a injetar
		}
		log.Printf("[WEEKLY] carregar grade ativa falhou: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao carregar a grade ativa")
	}

	for _, slot := range active.Slots {
		if !slot.IsExpress() {
			continue
		}
		idx := (slot.ClassSlotWeekday + 6) % 7 // calendário (0=dom) → índice segunda-first
		if len(resp.Days[idx].Classes) == 0 {
			continue
		}
		startMin := helper.HHMMToMinutes(slot.ClassSlotStartTime)
		resp.Days[idx].Classes = append(resp.Days[idx].Classes, dto.WeeklyClassResponse{
			Name:        slot.ClassSlotName,
			Category:    scheduleModel.CategoryExpress,
			StartTime:   slot.ClassSlotStartTime,
			EndTime:     helper.MinutesToHHMM(startMin + slot.ClassSlotDurationMin),
			DurationMin: slot.ClassSlotDurationMin,
			Room:        slot.ClassSlotRoom,
			Instructor:  slot.ClassSlotInstructor,
			Intensity:   intensityLevel(slot.ClassSlotIntensity),
			Source:      dto.SourceClubFit,
		})
	}
	return nil
}

/* ===============================
   Classificação
=================================*/

var aquaKeywords = []string{"piscina", "aqua", "água", "agua", "hidro", "natação", "natacao", "nado"}

// classifyCategory decide TERRA ou AGUA pelo texto de sala e título.
// O OVG não manda categoria estruturada.
func classifyCategory(title, room string) scheduleModel.ClassCategory {
	haystack := strings.ToLower(title + " " + room)
	for _, kw := range aquaKeywords {
		if strings.Contains(haystack, kw) {
			return scheduleModel.CategoryAgua
		}
	}
	return scheduleModel.CategoryTerra
}

// Ordem importa: os termos de nível 4 contêm os de nível 3 ("muito alta"
// contém "alta").
var intensityKeywords = []struct {
	keyword string
	level   int
}{
	{"muito alta", 4},
	{"máxima", 4},
	{"maxima", 4},
	{"extrema", 4},
	{"alta", 3},
	{"intensa", 3},
	{"forte", 3},
	{"moderada", 2},
	{"média", 2},
	{"media", 2},
	{"leve", 1},
	{"baixa", 1},
	{"suave", 1},
}

// intensityLevel converte o texto livre de intensidade para a escala 1..4.
// Texto desconhecido cai no nível 2 (moderada).
func intensityLevel(text string) int {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 2
	}
	if n, err := strconv.Atoi(t); err == nil && n >= 1 && n <= 4 {
		return n
	}
	for _, entry := range intensityKeywords {
		if strings.Contains(t, entry.keyword) {
			return entry.level
		}
	}
	return 2
}
