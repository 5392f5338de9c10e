package parley_test

import (
	"fmt"
	"log"

	"parley"
	"parley/pkg/domain"
)

// Example demonstrates driving the game master directly as a library,
// without a session store or transport.
func Example() {
	app, err := parley.New()
	if err != nil {
		log.Fatal(err)
	}

	// Sessions carry all mutable state; the engine itself is stateless.
	sess := domain.NewSession(app.GameMaster.World().Start())
	app.GameMaster.Start(sess, "Mira")

	// Saying an action id verbatim always resolves.
	out := app.GameMaster.Apply(sess, "inspect_box")
	fmt.Println(out.Kind)
	fmt.Println(sess.CurrentScene)
	// Output:
	// advanced
	// box
}

// Example_shopping shows the storefront resolving a spoken product
// reference into a cart line.
func Example_shopping() {
	app, err := parley.New()
	if err != nil {
		log.Fatal(err)
	}

	sess := domain.NewSession("")
	app.Storefront.Start(sess, "Asha")

	out := app.Storefront.AddToCart(sess, "a couple of coffee mugs", 2, "")
	fmt.Println(out.Kind)
	fmt.Println(sess.Cart[0].ProductID, sess.Cart[0].Quantity)
	// Output:
	// advanced
	// mug-001 2
}
