// Command qkdsim demonstrates the post-processing pipeline end to
// end. It stands in for a real quantum front end: rather than
// simulating BB84 sifting, it starts from a random raw key and
// injects a configurable fraction of synthetic bit errors to produce
// the Responder's correlated copy, then runs both parties over an
// in-memory channel.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	mrand "math/rand"
	"os"

	"github.com/pion/logging"
	"github.com/qkdpost/core/pkg/bits"
	"github.com/qkdpost/core/pkg/qkd"
)

func main() {
	n := flag.Int("n", 4096, "raw key length in bits")
	errorRate := flag.Float64("error-rate", 0.02, "synthetic bit-error rate injected into the responder's copy")
	fieldWidth := flag.Int("field-width", 64, "GF(2^n) verification tag width (64 or 128)")
	minKeyLength := flag.Int("min-key-length", qkd.DefaultMinKeyLength, "minimum acceptable final key length")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	rawKey, err := randomKey(*n)
	if err != nil {
		log.Fatalf("qkdsim: %v", err)
	}
	responderKey := injectErrors(rawKey, *errorRate)

	channelKey := make([]byte, 32)
	preSharedSeed := make([]byte, 32)
	if _, err := rand.Read(channelKey); err != nil {
		log.Fatalf("qkdsim: %v", err)
	}
	if _, err := rand.Read(preSharedSeed); err != nil {
		log.Fatalf("qkdsim: %v", err)
	}

	var loggerFactory logging.LoggerFactory
	if *verbose {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	opts := qkd.Options{
		FieldWidth:    *fieldWidth,
		MinKeyLength:  *minKeyLength,
		LoggerFactory: loggerFactory,
	}

	sampleSize := *n * 10
	initiatorResult, responderResult := qkd.RunPair(
		context.Background(),
		channelKey,
		preSharedSeed,
		qkd.StaticSource{Key: rawKey, QBER: *errorRate, SampleSize: sampleSize},
		qkd.StaticSource{Key: responderKey, QBER: *errorRate, SampleSize: sampleSize},
		opts,
	)

	report("initiator", initiatorResult)
	report("responder", responderResult)

	if !initiatorResult.Success || !responderResult.Success {
		os.Exit(1)
	}
	if !bits.Equal(initiatorResult.FinalKey, responderResult.FinalKey) {
		fmt.Fprintln(os.Stderr, "qkdsim: final keys diverge between parties")
		os.Exit(1)
	}
}

func report(party string, r qkd.Result) {
	if r.Success {
		fmt.Printf("%s: success, final key = %d bits, leakage = %d bits, qber = %.4f\n",
			party, r.FinalKey.Len(), r.LeakageBits, r.EstimatedQBER)
		return
	}
	fmt.Printf("%s: aborted, reason = %s, qber = %.4f\n", party, r.Reason, r.EstimatedQBER)
}

func randomKey(n int) (bits.Vector, error) {
	buf := make([]byte, (n+7)/8)
	if _, err := rand.Read(buf); err != nil {
		return bits.Vector{}, err
	}
	return bits.FromBytes(buf, n)
}

// injectErrors returns a copy of v with approximately fraction of its
// bits flipped, simulating the responder's noisier copy of the raw
// key. This is the one deliberately trivial stand-in for the
// out-of-scope quantum simulator.
func injectErrors(v bits.Vector, fraction float64) bits.Vector {
	out := v.Clone()
	rng := mrand.New(mrand.NewSource(int64(v.Len()) ^ 0x5DEECE66D))
	for i := 0; i < out.Len(); i++ {
		if rng.Float64() < fraction {
			out.Flip(i)
		}
	}
	return out
}
