package catena_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/petrijr/catena"
)

// Example_chainBuilder demonstrates composing and running a simple chain
// with the high-level ChainBuilder API.
func Example_chainBuilder() {
	ctx := context.Background()

	chain := catena.NewChain().
		Step("greet", func(ctx context.Context, s catena.State) (any, error) {
			return "hello", nil
		}).
		Step("decorate", func(ctx context.Context, s catena.State) (any, error) {
			return s.PreviousResult().(string) + ", gopher", nil
		}).
		Build()

	out, err := catena.Execute(ctx, chain, catena.NewState())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out)
	// Output: hello, gopher
}

// Example_stateThreading demonstrates accumulating values in the immutable
// state across steps by returning a State from a handler.
func Example_stateThreading() {
	ctx := context.Background()

	chain := catena.NewChain().
		Step("first", func(ctx context.Context, s catena.State) (any, error) {
			return s.With("sum", 1), nil
		}).
		Step("second", func(ctx context.Context, s catena.State) (any, error) {
			v, _ := s.Value("sum")
			return v.(int) + 1, nil
		}).
		Build()

	out, err := catena.Execute(ctx, chain, catena.NewState())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out)
	// Output: 2
}

// Example_retry demonstrates the only way a failure reaches the caller:
// a Retry node exhausting its attempt budget.
func Example_retry() {
	ctx := context.Background()

	flaky := catena.Named("flaky", func(ctx context.Context, s catena.State) (any, error) {
		return nil, errors.New("service unavailable")
	})

	_, err := catena.Execute(ctx, catena.Retry(3, flaky), catena.NewState())

	if ex, ok := catena.IsExhausted(err); ok {
		fmt.Printf("gave up after %d attempts\n", ex.Attempts)
	}
	// Output: gave up after 3 attempts
}

// Example_parallel demonstrates fan-out with results in declared order.
func Example_parallel() {
	ctx := context.Background()

	branch := func(v int) catena.Node {
		return catena.NewNode(func(ctx context.Context, s catena.State) (any, error) {
			return v * v, nil
		})
	}

	out, err := catena.Execute(ctx, catena.Parallel(branch(1), branch(2), branch(3)), catena.NewState())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out)
	// Output: [1 4 9]
}
