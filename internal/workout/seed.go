package workout

import (
	"context"
	"log/slog"
	"runtime"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// seedEntry is one catalogue exercise with its primary muscle group.
type seedEntry struct {
	name       string
	muscle     string
	unilateral bool
}

// SeedCatalogue loads the exercise catalogue shipped with the application.
// Entries are upserted by name so re-running on an existing database is
// harmless. The inserts fan out over a bounded errgroup since each one is an
// independent transaction.
func (s *Service) SeedCatalogue(ctx context.Context) error {
	// Some names appear in the seed under more than one muscle group. Merge
	// them before the fan-out: one upsert per name, all its muscle groups in
	// seed order, so concurrent upserts never race on the same row.
	merged := make(map[string]*Exercise, len(catalogueSeed))
	names := make([]string, 0, len(catalogueSeed))
	for _, entry := range catalogueSeed {
		exercise, ok := merged[entry.name]
		if !ok {
			exercise = &Exercise{ID: uuid.New(), Name: entry.name}
			merged[entry.name] = exercise
			names = append(names, entry.name)
		}
		if !slices.Contains(exercise.PrimaryMuscleGroups, entry.muscle) {
			exercise.PrimaryMuscleGroups = append(exercise.PrimaryMuscleGroups, entry.muscle)
		}
		exercise.IsUnilateral = exercise.IsUnilateral || entry.unilateral
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for _, name := range names {
		exercise := *merged[name]
		group.Go(func() error {
			_, err := s.repo.upsertExercise(ctx, exercise)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "exercise catalogue seeded",
		slog.Int("exercises", len(names)))
	return nil
}

var catalogueSeed = []seedEntry{
	{name: "Supino inclinado com halteres", muscle: "Peito"},
	{name: "Supino inclinado com barra", muscle: "Peito"},
	{name: "Supino inclinado máquina", muscle: "Peito"},
	{name: "Supino reto com barra", muscle: "Peito"},
	{name: "Supino reto com halteres", muscle: "Peito"},
	{name: "Supino reto máquina", muscle: "Peito"},
	{name: "Supino declinado com barra", muscle: "Peito"},
	{name: "Supino declinado com halteres", muscle: "Peito"},
	{name: "Supino declinado máquina", muscle: "Peito"},
	{name: "Crucifixo inclinado com halteres", muscle: "Peito"},
	{name: "Crucifixo inclinado no cabo", muscle: "Peito"},
	{name: "Crucifixo reto com halteres", muscle: "Peito"},
	{name: "Crucifixo reto no cabo", muscle: "Peito"},
	{name: "Crucifixo declinado com halteres", muscle: "Peito"},
	{name: "Crossover", muscle: "Peito"},
	{name: "Crossover alto", muscle: "Peito"},
	{name: "Crossover baixo", muscle: "Peito"},
	{name: "Crossover unilateral", muscle: "Peito", unilateral: true},
	{name: "Push-up", muscle: "Peito"},
	{name: "Peck deck", muscle: "Peito"},
	{name: "Flexão de braço", muscle: "Peito"},
	{name: "Flexão de braço inclinada", muscle: "Peito"},
	{name: "Flexão de braço declinada", muscle: "Peito"},
	{name: "Flexão de braço diamante", muscle: "Peito"},
	{name: "Supino com pegada fechada", muscle: "Peito"},
	{name: "Pullover com halteres", muscle: "Peito"},
	{name: "Pullover com barra", muscle: "Peito"},
	{name: "Pullover na máquina", muscle: "Peito"},
	{name: "Supino no Smith", muscle: "Peito"},
	{name: "Supino inclinado no Smith", muscle: "Peito"},
	{name: "Barra fixa", muscle: "Costas"},
	{name: "Barra fixa pegada aberta", muscle: "Costas"},
	{name: "Barra fixa pegada fechada", muscle: "Costas"},
	{name: "Barra fixa supinada", muscle: "Costas"},
	{name: "Barra fixa pronada", muscle: "Costas"},
	{name: "Barra fixa neutra", muscle: "Costas"},
	{name: "Puxada frontal", muscle: "Costas"},
	{name: "Puxada aberta", muscle: "Costas"},
	{name: "Puxada fechada", muscle: "Costas"},
	{name: "Puxada com triângulo", muscle: "Costas"},
	{name: "Puxada supinada", muscle: "Costas"},
	{name: "Puxada pronada", muscle: "Costas"},
	{name: "Puxada atrás da nuca", muscle: "Costas"},
	{name: "Puxada unilateral", muscle: "Costas", unilateral: true},
	{name: "Remada curvada com barra", muscle: "Costas"},
	{name: "Remada curvada com halteres", muscle: "Costas"},
	{name: "Remada curvada pronada", muscle: "Costas"},
	{name: "Remada curvada supinada", muscle: "Costas"},
	{name: "Remada cavalinho", muscle: "Costas"},
	{name: "Remada sentada", muscle: "Costas"},
	{name: "Remada sentada pegada fechada", muscle: "Costas"},
	{name: "Remada sentada pegada aberta", muscle: "Costas"},
	{name: "Remada baixa", muscle: "Costas"},
	{name: "Remada baixa com triângulo", muscle: "Costas"},
	{name: "Remada baixa pegada aberta", muscle: "Costas"},
	{name: "Remada unilateral com halteres", muscle: "Costas", unilateral: true},
	{name: "Remada unilateral no cabo", muscle: "Costas", unilateral: true},
	{name: "Remada com halteres", muscle: "Costas", unilateral: true},
	{name: "Remada serrote", muscle: "Costas", unilateral: true},
	{name: "Levantamento terra", muscle: "Costas"},
	{name: "Levantamento terra sumô", muscle: "Costas"},
	{name: "Levantamento terra romeno", muscle: "Costas"},
	{name: "Levantamento terra com barra", muscle: "Costas"},
	{name: "Levantamento terra com halteres", muscle: "Costas"},
	{name: "Remada máquina", muscle: "Costas"},
	{name: "Remada articulada", muscle: "Costas"},
	{name: "Pulldown", muscle: "Costas"},
	{name: "Remada T com barra", muscle: "Costas"},
	{name: "Remada T com pegada neutra", muscle: "Costas"},
	{name: "Remada Pendlay", muscle: "Costas"},
	{name: "Desenvolvimento com barra", muscle: "Ombros"},
	{name: "Desenvolvimento com halteres sentado", muscle: "Ombros"},
	{name: "Desenvolvimento com halteres em pé", muscle: "Ombros"},
	{name: "Desenvolvimento militar com barra", muscle: "Ombros"},
	{name: "Desenvolvimento militar com halteres", muscle: "Ombros"},
	{name: "Desenvolvimento Arnold", muscle: "Ombros"},
	{name: "Desenvolvimento na máquina", muscle: "Ombros"},
	{name: "Desenvolvimento no Smith", muscle: "Ombros"},
	{name: "Elevação lateral com halteres", muscle: "Ombros"},
	{name: "Elevação lateral com cabos", muscle: "Ombros"},
	{name: "Elevação lateral na máquina", muscle: "Ombros"},
	{name: "Elevação lateral inclinado", muscle: "Ombros"},
	{name: "Elevação lateral unilateral", muscle: "Ombros", unilateral: true},
	{name: "Elevação frontal com halteres", muscle: "Ombros"},
	{name: "Elevação frontal com barra", muscle: "Ombros"},
	{name: "Elevação frontal com disco", muscle: "Ombros"},
	{name: "Elevação frontal com cabo", muscle: "Ombros"},
	{name: "Elevação frontal alternada", muscle: "Ombros", unilateral: true},
	{name: "Crucifixo inverso com halteres", muscle: "Ombros"},
	{name: "Crucifixo inverso no cabo", muscle: "Ombros"},
	{name: "Crucifixo inverso na máquina", muscle: "Ombros"},
	{name: "Crucifixo inverso inclinado", muscle: "Ombros"},
	{name: "Remada alta com barra", muscle: "Ombros"},
	{name: "Remada alta com halteres", muscle: "Ombros"},
	{name: "Remada alta com cabo", muscle: "Ombros"},
	{name: "Face pull", muscle: "Ombros"},
	{name: "Elevação posterior com halteres", muscle: "Ombros"},
	{name: "Elevação posterior no cabo", muscle: "Ombros"},
	{name: "Elevação posterior máquina", muscle: "Ombros"},
	{name: "Rosca direta com barra", muscle: "Bíceps"},
	{name: "Rosca direta com halteres", muscle: "Bíceps"},
	{name: "Rosca direta com barra W", muscle: "Bíceps"},
	{name: "Rosca direta no cabo", muscle: "Bíceps"},
	{name: "Rosca direta na máquina", muscle: "Bíceps"},
	{name: "Rosca alternada", muscle: "Bíceps", unilateral: true},
	{name: "Rosca alternada em pé", muscle: "Bíceps", unilateral: true},
	{name: "Rosca alternada sentado", muscle: "Bíceps", unilateral: true},
	{name: "Rosca martelo com halteres", muscle: "Bíceps"},
	{name: "Rosca martelo no cabo", muscle: "Bíceps"},
	{name: "Rosca martelo alternada", muscle: "Bíceps", unilateral: true},
	{name: "Rosca concentrada", muscle: "Bíceps", unilateral: true},
	{name: "Rosca Scott com barra", muscle: "Bíceps"},
	{name: "Rosca Scott com halteres", muscle: "Bíceps"},
	{name: "Rosca Scott com barra W", muscle: "Bíceps"},
	{name: "Rosca Scott no cabo", muscle: "Bíceps"},
	{name: "Rosca Scott unilateral", muscle: "Bíceps", unilateral: true},
	{name: "Rosca inversa com barra", muscle: "Bíceps"},
	{name: "Rosca inversa com halteres", muscle: "Bíceps"},
	{name: "Rosca inversa no cabo", muscle: "Bíceps"},
	{name: "Rosca na polia baixa", muscle: "Bíceps"},
	{name: "Rosca na polia alta", muscle: "Bíceps"},
	{name: "Rosca 21", muscle: "Bíceps"},
	{name: "Rosca inclinada com halteres", muscle: "Bíceps"},
	{name: "Rosca inclinada alternada", muscle: "Bíceps", unilateral: true},
	{name: "Rosca Spider com barra", muscle: "Bíceps"},
	{name: "Rosca Spider com halteres", muscle: "Bíceps"},
	{name: "Rosca na máquina", muscle: "Bíceps"},
	{name: "Tríceps testa com barra", muscle: "Tríceps"},
	{name: "Tríceps testa com halteres", muscle: "Tríceps"},
	{name: "Tríceps testa com barra W", muscle: "Tríceps"},
	{name: "Tríceps testa no cabo", muscle: "Tríceps"},
	{name: "Tríceps testa unilateral", muscle: "Tríceps", unilateral: true},
	{name: "Tríceps pulley com corda", muscle: "Tríceps"},
	{name: "Tríceps pulley com barra reta", muscle: "Tríceps"},
	{name: "Tríceps pulley com barra V", muscle: "Tríceps"},
	{name: "Tríceps pulley pegada invertida", muscle: "Tríceps"},
	{name: "Tríceps pulley unilateral", muscle: "Tríceps", unilateral: true},
	{name: "Tríceps francês com barra", muscle: "Tríceps"},
	{name: "Tríceps francês com halteres", muscle: "Tríceps"},
	{name: "Tríceps francês unilateral", muscle: "Tríceps", unilateral: true},
	{name: "Tríceps francês no cabo", muscle: "Tríceps"},
	{name: "Tríceps coice com halteres", muscle: "Tríceps", unilateral: true},
	{name: "Tríceps coice no cabo", muscle: "Tríceps", unilateral: true},
	{name: "Tríceps coice bilateral", muscle: "Tríceps"},
	{name: "Mergulho entre bancos", muscle: "Tríceps"},
	{name: "Mergulho no banco", muscle: "Tríceps"},
	{name: "Mergulho na paralela", muscle: "Tríceps"},
	{name: "Supino fechado com barra", muscle: "Tríceps"},
	{name: "Supino fechado com halteres", muscle: "Tríceps"},
	{name: "Supino fechado no Smith", muscle: "Tríceps"},
	{name: "Tríceps na máquina", muscle: "Tríceps"},
	{name: "Tríceps cross no cabo", muscle: "Tríceps"},
	{name: "Tríceps cross unilateral", muscle: "Tríceps", unilateral: true},
	{name: "Tríceps over head no cabo", muscle: "Tríceps"},
	{name: "Tríceps polia alta", muscle: "Tríceps"},
	{name: "Tríceps polia baixa", muscle: "Tríceps"},
	{name: "Agachamento livre com barra", muscle: "Quadríceps"},
	{name: "Agachamento livre com halteres", muscle: "Quadríceps"},
	{name: "Agachamento frontal com barra", muscle: "Quadríceps"},
	{name: "Agachamento frontal no Smith", muscle: "Quadríceps"},
	{name: "Agachamento sumô com halteres", muscle: "Quadríceps"},
	{name: "Agachamento sumô com barra", muscle: "Quadríceps"},
	{name: "Agachamento no Smith", muscle: "Quadríceps"},
	{name: "Agachamento hack", muscle: "Quadríceps"},
	{name: "Agachamento sissy", muscle: "Quadríceps"},
	{name: "Agachamento búlgaro com halteres", muscle: "Quadríceps", unilateral: true},
	{name: "Agachamento búlgaro com barra", muscle: "Quadríceps", unilateral: true},
	{name: "Leg press 45°", muscle: "Quadríceps"},
	{name: "Leg press horizontal", muscle: "Quadríceps"},
	{name: "Leg press 45° unilateral", muscle: "Quadríceps", unilateral: true},
	{name: "Extensora bilateral", muscle: "Quadríceps"},
	{name: "Extensora unilateral", muscle: "Quadríceps", unilateral: true},
	{name: "Afundo com halteres", muscle: "Quadríceps", unilateral: true},
	{name: "Afundo com barra", muscle: "Quadríceps", unilateral: true},
	{name: "Afundo no Smith", muscle: "Quadríceps", unilateral: true},
	{name: "Afundo caminhando", muscle: "Quadríceps", unilateral: true},
	{name: "Afundo reverso", muscle: "Quadríceps", unilateral: true},
	{name: "Afundo lateral", muscle: "Quadríceps", unilateral: true},
	{name: "Afundo estático", muscle: "Quadríceps", unilateral: true},
	{name: "Passada com halteres", muscle: "Quadríceps"},
	{name: "Passada com barra", muscle: "Quadríceps"},
	{name: "Flexora deitado", muscle: "Posterior de Coxa"},
	{name: "Flexora deitado unilateral", muscle: "Posterior de Coxa", unilateral: true},
	{name: "Flexora sentado", muscle: "Posterior de Coxa"},
	{name: "Flexora sentado unilateral", muscle: "Posterior de Coxa", unilateral: true},
	{name: "Flexora em pé", muscle: "Posterior de Coxa", unilateral: true},
	{name: "Mesa flexora", muscle: "Posterior de Coxa"},
	{name: "Stiff com barra", muscle: "Posterior de Coxa"},
	{name: "Stiff com halteres", muscle: "Posterior de Coxa"},
	{name: "Stiff unilateral", muscle: "Posterior de Coxa", unilateral: true},
	{name: "Levantamento terra com barra", muscle: "Posterior de Coxa"},
	{name: "Levantamento terra com halteres", muscle: "Posterior de Coxa"},
	{name: "Levantamento terra romeno", muscle: "Posterior de Coxa"},
	{name: "Good morning com barra", muscle: "Posterior de Coxa"},
	{name: "Good morning no Smith", muscle: "Posterior de Coxa"},
	{name: "Cadeira flexora", muscle: "Posterior de Coxa"},
	{name: "Flexora no cabo", muscle: "Posterior de Coxa", unilateral: true},
	{name: "Elevação pélvica com barra", muscle: "Glúteos"},
	{name: "Elevação pélvica com halteres", muscle: "Glúteos"},
	{name: "Elevação pélvica unilateral", muscle: "Glúteos", unilateral: true},
	{name: "Hip thrust com barra", muscle: "Glúteos"},
	{name: "Hip thrust com halteres", muscle: "Glúteos"},
	{name: "Hip thrust unilateral", muscle: "Glúteos", unilateral: true},
	{name: "Glúteo na máquina", muscle: "Glúteos"},
	{name: "Glúteo no cabo", muscle: "Glúteos", unilateral: true},
	{name: "Coice na máquina", muscle: "Glúteos", unilateral: true},
	{name: "Coice na polia", muscle: "Glúteos", unilateral: true},
	{name: "Coice com caneleira", muscle: "Glúteos", unilateral: true},
	{name: "Abdução de quadril na máquina", muscle: "Glúteos"},
	{name: "Abdução de quadril no cabo", muscle: "Glúteos", unilateral: true},
	{name: "Abdutora", muscle: "Glúteos"},
	{name: "Cadeira abdutora", muscle: "Glúteos"},
	{name: "Agachamento sumô com halteres", muscle: "Glúteos"},
	{name: "Agachamento sumô com barra", muscle: "Glúteos"},
	{name: "Stiff com barra", muscle: "Glúteos"},
	{name: "Stiff com halteres", muscle: "Glúteos"},
	{name: "Panturrilha em pé na máquina", muscle: "Panturrilha"},
	{name: "Panturrilha em pé com barra", muscle: "Panturrilha"},
	{name: "Panturrilha em pé no Smith", muscle: "Panturrilha"},
	{name: "Panturrilha sentado na máquina", muscle: "Panturrilha"},
	{name: "Panturrilha sentado com halteres", muscle: "Panturrilha"},
	{name: "Panturrilha no leg press 45°", muscle: "Panturrilha"},
	{name: "Panturrilha no leg press horizontal", muscle: "Panturrilha"},
	{name: "Panturrilha unilateral em pé", muscle: "Panturrilha", unilateral: true},
	{name: "Panturrilha unilateral no leg press", muscle: "Panturrilha", unilateral: true},
	{name: "Panturrilha livre", muscle: "Panturrilha"},
	{name: "Panturrilha no hack", muscle: "Panturrilha"},
	{name: "Abdominal supra", muscle: "Abdômen"},
	{name: "Abdominal supra no solo", muscle: "Abdômen"},
	{name: "Abdominal supra no banco declinado", muscle: "Abdômen"},
	{name: "Abdominal infra", muscle: "Abdômen"},
	{name: "Abdominal infra no solo", muscle: "Abdômen"},
	{name: "Abdominal oblíquo", muscle: "Abdômen"},
	{name: "Abdominal oblíquo no solo", muscle: "Abdômen"},
	{name: "Abdominal oblíquo no cabo", muscle: "Abdômen"},
	{name: "Abdominal remador", muscle: "Abdômen"},
	{name: "Abdominal na polia alta", muscle: "Abdômen"},
	{name: "Abdominal na polia com corda", muscle: "Abdômen"},
	{name: "Abdominal canivete", muscle: "Abdômen"},
	{name: "Abdominal bicicleta", muscle: "Abdômen"},
	{name: "Abdominal crunch", muscle: "Abdômen"},
	{name: "Abdominal crunch com peso", muscle: "Abdômen"},
	{name: "Prancha isométrica", muscle: "Abdômen"},
	{name: "Prancha com apoio nos cotovelos", muscle: "Abdômen"},
	{name: "Prancha lateral", muscle: "Abdômen", unilateral: true},
	{name: "Prancha com elevação de perna", muscle: "Abdômen"},
	{name: "Elevação de pernas suspensa", muscle: "Abdômen"},
	{name: "Elevação de pernas na barra fixa", muscle: "Abdômen"},
	{name: "Elevação de pernas deitado", muscle: "Abdômen"},
	{name: "Elevação de joelhos suspensa", muscle: "Abdômen"},
	{name: "Russian twist com peso", muscle: "Abdômen"},
	{name: "Russian twist sem peso", muscle: "Abdômen"},
	{name: "Mountain climber", muscle: "Abdômen"},
	{name: "Abdominal na máquina", muscle: "Abdômen"},
	{name: "Abdominal na bola suíça", muscle: "Abdômen"},
	{name: "V-up", muscle: "Abdômen"},
	{name: "Encolhimento com barra", muscle: "Trapézio"},
	{name: "Encolhimento com halteres", muscle: "Trapézio"},
	{name: "Encolhimento com barra pela frente", muscle: "Trapézio"},
	{name: "Encolhimento com barra por trás", muscle: "Trapézio"},
	{name: "Encolhimento na máquina", muscle: "Trapézio"},
	{name: "Encolhimento no Smith", muscle: "Trapézio"},
	{name: "Encolhimento unilateral com halteres", muscle: "Trapézio", unilateral: true},
	{name: "Encolhimento unilateral no cabo", muscle: "Trapézio", unilateral: true},
	{name: "Remada alta com barra", muscle: "Trapézio"},
	{name: "Remada alta com halteres", muscle: "Trapézio"},
	{name: "Remada alta no cabo", muscle: "Trapézio"},
	{name: "Remada alta com barra W", muscle: "Trapézio"},
	{name: "Levantamento terra", muscle: "Trapézio"},
	{name: "Farmer walk com halteres", muscle: "Trapézio"},
	{name: "Farmer walk com kettlebell", muscle: "Trapézio"},
	{name: "Rosca punho com barra", muscle: "Antebraço"},
	{name: "Rosca punho com halteres", muscle: "Antebraço"},
	{name: "Rosca punho inversa com barra", muscle: "Antebraço"},
	{name: "Rosca punho inversa com halteres", muscle: "Antebraço"},
	{name: "Rosca punho unilateral", muscle: "Antebraço", unilateral: true},
	{name: "Farmer walk com halteres", muscle: "Antebraço"},
	{name: "Farmer walk com kettlebell", muscle: "Antebraço"},
	{name: "Pronação e supinação com halteres", muscle: "Antebraço"},
	{name: "Pronação e supinação com barra", muscle: "Antebraço"},
	{name: "Rosca martelo", muscle: "Antebraço"},
	{name: "Rosca inversa com barra", muscle: "Antebraço"},
	{name: "Rosca inversa com halteres", muscle: "Antebraço"},
	{name: "Extensão de punho no banco", muscle: "Antebraço"},
	{name: "Flexão de punho no banco", muscle: "Antebraço"},
}
