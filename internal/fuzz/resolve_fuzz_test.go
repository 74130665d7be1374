package fuzztests

import (
	"context"
	"testing"

	"zeron/internal/sema"
	"zeron/internal/testkit"
)

// FuzzResolve прогоняет резолвер на всём, что разобралось без ошибок.
// Успешный проход обязан оставить типизированное дерево и согласованную
// таблицу; ошибка обязана быть ResolutionError, а не паникой.
func FuzzResolve(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		_, builder, pr, bag := parse(context.Background(), clampInput(input))
		if bag.HasErrors() {
			return
		}
		res := sema.Resolve(context.Background(), builder, pr.File, sema.Options{})
		if !res.OK() {
			if res.Err.Error() == "" {
				t.Fatalf("empty resolution error for %q", truncateForLog(input, 200))
			}
			return
		}
		if err := testkit.CheckResolved(builder, pr.File); err != nil {
			t.Fatalf("resolved tree: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if err := testkit.CheckTable(res.Table); err != nil {
			t.Fatalf("table: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}
