package fuzztests

import (
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// languageSeeds покрывают каждое правило и типичные ошибки разбора.
var languageSeeds = []string{
	"",
	"fn f(x: u32) -> u32 { ((x)) }\n",
	"const C: u32 = ((1));\n",
	"fn f() { loop { break (); } }\n",
	"fn f(x: bool) -> bool { x == true }\n",
	"fn f(x: bool) -> bool { false != x }\n",
	"fn f(a: u32, b: u32) -> bool { a < b || a == b }\n",
	"fn f(a: u32, b: u32) -> bool { a < b && a > b }\n",
	"fn f(a: bool, b: bool) { if a { } else { if b { } } }\n",
	"fn f(o: Option<u32>) { match o { Option::Some(v) => g(v), _ => (), } }\n",
	"fn f(mut s: Span<u32>) { loop { match s.pop_front() { Option::Some(x) => g(x), Option::None => { break; }, } } }\n",
	"fn f(o: Option<u32>) -> u32 { if let Option::Some(v) = o { v } else { 0 } }\n",
	"fn f() { let x = 1; }\n",
	"use core::array::ArrayTrait;\nfn f() {}\n",
	"impl I of T { fn m(self: @u32) -> bool { ((true)) } }\n",
	"#[derive(Drop)]\nstruct P { x: u32, y: u32 }\nfn f(p: P) -> u32 { let P { x, y: _ } = p; x }\n",
	"fn f() { let s = \"unterminated; }\n",
	"fn broken( { let = ; }\n",
	"fn f() { { { { } } } }\n",
	"fn f() {\r\n    // comment\r\n    let _x = 'ab';\r\n}\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
