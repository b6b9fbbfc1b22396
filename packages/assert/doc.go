// Package assert provides assertions for the artifacts of code-generation
// tools: the files a generator scaffolds, the JSON it writes, the SQLite
// databases it seeds, and the capabilities of the generator object itself.
//
// Assertions accept any TestingT, so they run under *testing.T, *testing.B
// or a compatible harness. A failed assertion reports through t.Errorf and
// lets the test continue; broken fixtures and API misuse (a JSON file that
// does not parse, an unsupported pattern kind) stop the test immediately,
// since every later check against the same artifact would only cascade.
package assert
