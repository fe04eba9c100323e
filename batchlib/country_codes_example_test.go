package batchlib_test

import (
	"fmt"

	"github.com/9seconds/geobatch/batchlib"
)

func ExampleNormalizeAlpha2Code() {
	fmt.Println(batchlib.NormalizeAlpha2Code("ru"))
	// output: RU
}

func ExampleNormalizeAlpha2Code_yugoslavia() {
	fmt.Println(batchlib.NormalizeAlpha2Code("YU"))
	// output: CS
}

func ExampleCountryName() {
	fmt.Println(batchlib.CountryName("it"))
	// output: Italy
}
