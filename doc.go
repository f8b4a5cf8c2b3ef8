// Package cuboard turns a GAN v2 smart cube into a keyboard.
//
// # Quick Start
//
// Connect to the first cube in range and type with it:
//
//	ctx := context.Background()
//	gan, err := cuboard.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gan.Close()
//
//	session := cuboard.NewSession()
//	session.OnEvent(func(ev cuboard.Event) {
//	    if ev.Kind == cuboard.EventFinish {
//	        fmt.Print(ev.Text)
//	    }
//	})
//	if err := session.Run(ctx, gan.Messages()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Keys
//
// A key is two or three quarter turns. The second distinct turn is the main
// move and selects one of twelve groups of four characters; the first turn,
// on a face adjacent to the main face, selects the character. Doubling the
// first turn selects the shifted character. The default layout is printed
// by Cheatsheet.
//
// Turns on parallel faces commute, so the cube may report a quick R L as
// L R. Session canonicalises such runs before parsing keys.
//
// # Without a cube
//
// Session.Run reads any channel of messages, and Simulate builds the Moves
// reports a cube would send for a move sequence, which is useful for tests
// and demos.
package cuboard
