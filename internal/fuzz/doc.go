// Package fuzztests houses Go fuzz harnesses for the lexer and the parser.
// They feed arbitrary bytes through a FileSet and check that every input
// still round trips, never panics and finishes in bounded time.
//
// Назначение: запускать fuzz-обработчики поверх lexer/parser.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
