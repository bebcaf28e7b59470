package hotel

import "context"

type contextKey string

const actorKey contextKey = "actor"

// NewContextWithActor tags ctx with who is driving the engine (an operator
// name, a terminal id). The audit trail picks it up from there.
func NewContextWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey).(string)

	return actor, ok
}
