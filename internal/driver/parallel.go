package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tagtree/internal/ast"
	"tagtree/internal/diag"
	"tagtree/internal/observ"
	"tagtree/internal/source"
	"tagtree/internal/trace"
)

// markupExts lists the file extensions ParseDir picks up.
var markupExts = map[string]bool{
	".html":  true,
	".htm":   true,
	".xhtml": true,
	".xml":   true,
	".svg":   true,
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // пустой виртуальный файл, если не загрузился
	Tree   *ast.Tree     // nil при фатальной ошибке или ошибке загрузки
	Bag    *diag.Bag     // Диагностики
	Cached bool
	Timing observ.Report
}

// ListFiles возвращает отсортированный список всех markup-файлов в директории
func ListFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) пропускаем
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if markupExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir парсит все markup-файлы в директории параллельно.
// Element names share one interner; everything else is per file.
// Results are in ListFiles order. The error is non-nil only for a walk
// failure or cancellation.
func ParseDir(ctx context.Context, dir string, opts Options, jobs int, sink ProgressSink) (*source.FileSet, *source.Interner, []ParseDirResult, error) {
	// Собираем список файлов
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	interner := source.NewInterner()
	if len(files) == 0 {
		return fileSet, interner, nil, nil
	}

	ctx, runSpan := trace.Start(ctx, trace.ScopeDriver, "parse-dir")
	runSpan.WithExtra("files", strconv.Itoa(len(files)))

	// Загружаем последовательно: FileSet выдаёт ID по порядку
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, lerr := fileSet.Load(path)
		if lerr != nil {
			// пустой виртуальный файл, чтобы диагностике было куда указывать
			loadErrors[path] = lerr
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = fileID
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			if loadErr, hadError := loadErrors[path]; hadError {
				bag, reporter := opts.newReporter()
				diag.ReportError(reporter, diag.IOLoadFileError, source.Span{File: fileIDs[path]},
					loadErr.Error()).Emit()
				results[i] = ParseDirResult{Path: path, FileID: fileIDs[path], Bag: bag}
				emit(sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(sink, Event{File: path, Stage: StageParse, Status: StatusWorking})
			file := fileSet.Get(fileIDs[path])
			timer := observ.NewTimer()
			doc, perr := parseDocument(gctx, file, interner, opts, timer)
			if perr != nil {
				emit(sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: perr})
				return perr
			}

			results[i] = ParseDirResult{
				Path:   path,
				FileID: file.ID,
				Tree:   doc.tree,
				Bag:    doc.bag,
				Cached: doc.cached,
				Timing: timer.Report(),
			}
			status := StatusDone
			if doc.tree == nil || doc.bag.HasErrors() {
				status = StatusError
			}
			emit(sink, Event{
				File:    path,
				Stage:   StageParse,
				Status:  status,
				Elapsed: time.Since(started),
				Cached:  doc.cached,
			})
			return nil
		})
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		runSpan.End("cancelled")
		return fileSet, interner, results, err
	}
	runSpan.End("")
	return fileSet, interner, results, nil
}
