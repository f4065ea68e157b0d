// scenecheck validates a scene file: it loads the JSON, reports what it
// found, and can rewrite the file in canonical form.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tetryon/physbed/scene"
)

func main() {
	resave := flag.Bool("resave", false, "rewrite the file in canonical form after loading")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: scenecheck [-resave] <scene.json>")
	}
	path := flag.Arg(0)

	var st scene.SceneState
	if err := st.Load(path); err != nil {
		log.Fatal(err)
	}

	counts := map[scene.Material]int{}
	shapes := map[scene.ShapeKind]int{}
	for _, o := range st.Objects() {
		counts[o.Material]++
		shapes[o.Shape]++
	}

	fmt.Printf("%s: %d objects\n", path, st.Len())
	for _, m := range []scene.Material{scene.MaterialMetal, scene.MaterialRubber} {
		if counts[m] > 0 {
			fmt.Printf("  %s: %d\n", m, counts[m])
		}
	}
	for _, s := range []scene.ShapeKind{scene.ShapeCircle, scene.ShapeBox, scene.ShapePolygon} {
		if shapes[s] > 0 {
			fmt.Printf("  %s: %d\n", s, shapes[s])
		}
	}

	if *resave {
		if err := st.Save(path); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("rewrote %s\n", path)
	}
}
