// Command isoq resolves free-text country and subdivision names to
// ISO 3166 codes.
//
// Usage:
//
//	isoq "United States"
//	isoq -country MX "Yucatan"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/andreiashu/iso3166"
)

func main() {
	country := flag.String("country", "", "resolve the query as a subdivision of this 2-letter country code")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: isoq [-country CC] <query>")
		os.Exit(2)
	}
	query := strings.Join(flag.Args(), " ")

	db, err := iso3166.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *country != "" {
		code, ok := db.ResolveSubdivision(*country, query)
		if !ok {
			fmt.Fprintf(os.Stderr, "no subdivision of %s matches %q\n", strings.ToUpper(*country), query)
			os.Exit(1)
		}
		name, _ := db.SubdivisionName(code)
		category, _ := db.SubdivisionCategory(code)
		fmt.Printf("%s\t%s (%s)\n", code, name, category)
		if cc, ok := db.Territory(code); ok {
			fmt.Printf("also a top-level country: %s\n", cc)
		}
		return
	}

	code, ok := db.ResolveCountry(query)
	if !ok {
		fmt.Fprintf(os.Stderr, "no country matches %q\n", query)
		os.Exit(1)
	}
	name, _ := db.CountryName(code)
	full, _ := db.CountryFullName(code)
	fmt.Printf("%s\t%s (%s)\n", code, name, full)
}
