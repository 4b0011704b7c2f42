// Command adtgen turns a file of sum type declarations into sealed Go
// interfaces with one defined type per case.
//
//	adtgen nodes.adt nodes_gen.go ast
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type TCase struct {
	Name string `@Ident "of"`
	Kind string `(@Ident | @String | @RawString)`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" (@@))*)`
	I     struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

// Check rejects case names that are declared twice, since each case
// becomes a package level type.
func (t *TypeDecls) Check() error {
	seen := map[string]string{}
	for _, decl := range t.Declarations {
		if prev, ok := seen[decl.Name]; ok {
			return fmt.Errorf("%s is declared in %s and again as a type", decl.Name, prev)
		}
		seen[decl.Name] = decl.Name
		if decl.Many == nil {
			continue
		}
		for _, it := range *decl.Many {
			if prev, ok := seen[it.Name]; ok {
				return fmt.Errorf("%s is declared in %s and again in %s", it.Name, prev, decl.Name)
			}
			seen[it.Name] = decl.Name
		}
	}
	return nil
}

func GenerateDecls(source, pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by adtgen from %s. DO NOT EDIT.", source))

	for _, decl := range t.Declarations {

		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
		} else if decl.Many != nil {
			f.Type().Id(decl.Name).Interface(
				Id("is_" + decl.Name).Params(),
			)

			for _, it := range *decl.Many {
				if t.IsSumType(it.Kind) {
					f.Type().Id(it.Name).Struct(Id(it.Kind))
				} else {
					f.Type().Id(it.Name).Id(it.Kind)
				}

				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}
		}
	}

	return fmt.Sprintf("%#v", f)
}

func run(in, out, pkgname string) error {
	parser, err := participle.Build(&TypeDecls{})
	if err != nil {
		return err
	}

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		return err
	}

	decls := TypeDecls{}
	err = parser.ParseBytes(inData, &decls)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err = decls.Check(); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	return ioutil.WriteFile(out, []byte(GenerateDecls(filepath.Base(in), pkgname, &decls)), 0644)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtgen <input.adt> <output.go> <package>")
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2], os.Args[3]); err != nil {
		fmt.Fprintln(os.Stderr, "adtgen:", err)
		os.Exit(1)
	}
}
