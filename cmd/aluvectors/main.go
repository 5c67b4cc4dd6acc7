// Command aluvectors writes a random ALU/branch vector file, or checks an
// existing one against the golden model.
package main

import (
	"flag"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/felipedavid/lx32check/vectors"
)

func main() {
	out := flag.String("o", "alu_vectors.tv", "output file")
	check := flag.String("check", "", "verify this vector file instead of generating one")
	count := flag.Int("n", 1000, "number of cases")
	maxOperand := flag.Uint("max", 300000, "operands are drawn from [0, max)")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	log := logrus.New()

	if *check != "" {
		f, err := os.Open(*check)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		n, err := vectors.Check(f)
		if err != nil {
			log.WithField("file", *check).Fatal(err)
		}
		log.WithFields(logrus.Fields{"file": *check, "cases": n}).Info("vector file ok")
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	rng := rand.New(rand.NewPCG(*seed, *seed))
	cases := vectors.Generate(rng, *count, uint32(*maxOperand))
	if err := vectors.Write(f, cases); err != nil {
		log.Fatal(err)
	}
	log.WithFields(logrus.Fields{"file": *out, "cases": len(cases)}).Info("vectors written")
}
