// ABOUTME: Real-time mixing engine package
// ABOUTME: Cycles a fixed buffer pool through an output sink
// Package engine mixes generators into a fixed pool of PCM buffers and
// keeps an output sink fed with them.
//
// The engine never blocks on the device. A driver calls Update on a short
// interval (the terminal mixer uses 50ms); each call reclaims buffers the
// sink has finished playing, refills them from every active generator and
// submits them again.
//
// Example:
//
//	sink, _ := output.New("oto")
//	eng, err := engine.New(sink, engine.DefaultConfig(),
//		generator.NewPink(generator.WithEnabled(true)))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer eng.Close()
//
//	for range time.Tick(50 * time.Millisecond) {
//		eng.Update()
//	}
package engine
