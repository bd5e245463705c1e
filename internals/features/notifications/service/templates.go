package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	scheduleModel "clubfit_backend/internals/features/schedules/model"
	scheduleService "clubfit_backend/internals/features/schedules/service"
	helper "clubfit_backend/internals/helpers"
)

/* ===============================
   Templates de e-mail (HTML)
=================================*/

var statusChangeTmpl = template.Must(template.New("status_change").Parse(`
<h2>Mudança de status da grade de aulas</h2>
<p>A grade <strong>{{.Title}}</strong> mudou de status.</p>
<table cellpadding="6" border="1" style="border-collapse:collapse">
	<tr><td><strong>Status anterior</strong></td><td>{{.PreviousStatus}}</td></tr>
	<tr><td><strong>Novo status</strong></td><td>{{.NewStatus}}</td></tr>
	<tr><td><strong>Alterado por</strong></td><td>{{.ChangedBy}}</td></tr>
	<tr><td><strong>Quando</strong></td><td>{{.When}}</td></tr>
	{{if .Note}}<tr><td><strong>Observação</strong></td><td>{{.Note}}</td></tr>{{end}}
</table>
`))

var initialScheduleTmpl = template.Must(template.New("initial_schedule").Parse(`
<h2>Primeira grade de aulas ativada</h2>
<p>A grade <strong>{{.Title}}</strong> entrou no ar com {{.ClassCount}} aula(s).</p>
<p>Ela passa a ser a referência para os próximos comparativos de mudanças.</p>
`))

var diffTmpl = template.Must(template.New("diff").Parse(`
<h2>Mudanças na grade de aulas</h2>
<p>A grade <strong>{{.NewTitle}}</strong> substituiu <strong>{{.PreviousTitle}}</strong>.</p>

{{if .Added}}
<h3>✅ Aulas adicionadas</h3>
<ul>
{{range .Added}}<li>{{.Line}}</li>
{{end}}</ul>
{{end}}

{{if .Removed}}
<h3>❌ Aulas removidas</h3>
<ul>
{{range .Removed}}<li>{{.Line}}</li>
{{end}}</ul>
{{end}}

{{if .Modified}}
<h3>✏️ Aulas modificadas</h3>
<ul>
{{range .Modified}}<li>{{.Line}}<ul>{{range .Deltas}}<li>{{.}}</li>{{end}}</ul></li>
{{end}}</ul>
{{end}}
`))

type changeLine struct {
	Line   string
	Deltas []string
}

func slotLine(s *scheduleModel.ClassSlotModel) string {
	return fmt.Sprintf("%s (%s) — %s %s, %d min, sala %s, prof. %s",
		s.ClassSlotName, s.ClassSlotCategory,
		helper.WeekdayName(s.ClassSlotWeekday), s.ClassSlotStartTime,
		s.ClassSlotDurationMin, s.ClassSlotRoom, s.ClassSlotInstructor)
}

// renderDiffEmail agrupa o diff por tipo de mudança; nas modificadas,
// só os campos que mudaram aparecem, com valor antigo → novo.
func renderDiffEmail(previousTitle, newTitle string, changes []scheduleService.ClassChange) (string, error) {
	data := struct {
		PreviousTitle, NewTitle   string
		Added, Removed, Modified []changeLine
	}{PreviousTitle: previousTitle, NewTitle: newTitle}

	for _, ch := range changes {
		line := changeLine{Line: slotLine(&ch.Slot)}
		switch ch.Type {
		case scheduleModel.ChangeAdded:
			data.Added = append(data.Added, line)
		case scheduleModel.ChangeRemoved:
			data.Removed = append(data.Removed, line)
		case scheduleModel.ChangeModified:
			line.Deltas = modifiedDeltas(ch)
			data.Modified = append(data.Modified, line)
		}
	}

	var buf bytes.Buffer
	if err := diffTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func modifiedDeltas(ch scheduleService.ClassChange) []string {
	if ch.Prev == nil {
		return nil
	}
	deltas := make([]string, 0, len(ch.ChangedFields))
	for _, f := range ch.ChangedFields {
		switch f {
		case "duration_min":
			deltas = append(deltas, fmt.Sprintf("Duração: %d min → %d min", ch.Prev.ClassSlotDurationMin, ch.Slot.ClassSlotDurationMin))
		case "room":
			deltas = append(deltas, fmt.Sprintf("Sala: %s → %s", ch.Prev.ClassSlotRoom, ch.Slot.ClassSlotRoom))
		case "instructor":
			deltas = append(deltas, fmt.Sprintf("Professor: %s → %s", ch.Prev.ClassSlotInstructor, ch.Slot.ClassSlotInstructor))
		case "intensity":
			deltas = append(deltas, fmt.Sprintf("Intensidade: %s → %s", ch.Prev.ClassSlotIntensity, ch.Slot.ClassSlotIntensity))
		case "category":
			deltas = append(deltas, fmt.Sprintf("Categoria: %s → %s", ch.Prev.ClassSlotCategory, ch.Slot.ClassSlotCategory))
		}
	}
	return deltas
}

func renderStatusChangeEmail(title string, previous, next scheduleModel.ScheduleStatus, actor helper.Actor, note *string) (string, error) {
	data := struct {
		Title, PreviousStatus, NewStatus, ChangedBy, When string
		Note                                              string
	}{
		Title:          title,
		PreviousStatus: string(previous),
		NewStatus:      string(next),
		ChangedBy:      actor.DisplayName(),
		When:           time.Now().Format("02/01/2006 15:04"),
	}
	if note != nil {
		data.Note = *note
	}

	var buf bytes.Buffer
	if err := statusChangeTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderInitialScheduleEmail(title string, classCount int) (string, error) {
	var buf bytes.Buffer
	err := initialScheduleTmpl.Execute(&buf, struct {
		Title      string
		ClassCount int
	}{title, classCount})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
