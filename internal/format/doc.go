// Package format serializes a syntax tree back to markup.
//
// Назначение: печать дерева (tagtree parse --format html) и проверка
// round-trip: структура тегов, порядок и значения атрибутов сохраняются,
// пробелы нормализуются.
// Не делает: воспроизведения исходного форматирования и комментариев.
// Зависимости: internal/ast, golang.org/x/net/html.
package format
