package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"beautycrm/internal/grid"
	"beautycrm/internal/model"
	"beautycrm/internal/parser"
)

// ErrUnsupportedFormat 不支持的文件格式，直接反馈给调用方，不重试
var ErrUnsupportedFormat = errors.New("importer: unsupported file format")

// 允许导入的文件扩展名
var allowedExts = map[string]grid.Kind{
	"csv":  grid.KindDelimited,
	"xlsx": grid.KindWorkbook,
	"xls":  grid.KindWorkbook,
}

// Importer 导入引擎
// 串联 解码 -> 表头定位 -> 字段标准化 -> 记录分类 四个阶段，
// 每个阶段完整结束后才进入下一阶段，不做流水线重叠。
type Importer struct {
	decoder    *grid.Decoder
	locator    *parser.HeaderLocator
	classifier *parser.Classifier
	logger     *zap.Logger
}

// New 创建导入引擎，delimiter 为 0 时使用逗号
func New(delimiter rune, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		decoder:    grid.NewDecoder(delimiter, logger),
		locator:    parser.NewHeaderLocator(),
		classifier: parser.NewClassifier(logger),
		logger:     logger,
	}
}

// PreCheck 文件预检查：只校验扩展名白名单，不做完整解析
func (imp *Importer) PreCheck(ext string) (*model.PreCheckResult, error) {
	e := normalizeExt(ext)
	if _, ok := allowedExts[e]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return &model.PreCheckResult{
		FileExt: e,
		Valid:   true,
		Message: "文件预检查通过",
	}, nil
}

// Ingest 解析文件内容并分类，不触碰数据存储
// 软性问题（缺表头、缺字段、零数据行）在各阶段内部按文档化的
// 兜底规则恢复，只有格式白名单校验失败才返回错误。
func (imp *Importer) Ingest(data []byte, ext string) (*model.ClassifiedData, *model.IngestSummary, error) {
	e := normalizeExt(ext)
	kind, ok := allowedExts[e]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	imp.logger.Info("开始解析文件", zap.String("ext", e), zap.Int("bytes", len(data)))

	g, err := imp.decoder.Decode(data, kind)
	if err != nil {
		// 解码器兜底失败仍然给下游一个空网格，让结果是"零条记录"而不是崩溃
		imp.logger.Warn("解码失败，使用空网格", zap.Error(err))
		g = grid.NewGrid()
	}

	headerRow := -1
	var canonical []string
	if loc, found := imp.locator.Locate(g); found {
		headerRow = loc.Row
		canonical = parser.CanonicalizeHeaders(loc.Headers)
		imp.logger.Info("定位到表头行",
			zap.Int("row", headerRow),
			zap.Int("columns", len(canonical)))
	}

	classified := imp.classifier.Classify(g, headerRow, canonical)

	ref := g.Ref()
	summary := &model.IngestSummary{
		TotalRows:        ref.EndRow - ref.StartRow + 1,
		HeaderRow:        headerRow,
		CustomerCount:    len(classified.Customers),
		ConsumptionCount: len(classified.Consumptions),
	}
	if g.CellCount() == 0 {
		summary.TotalRows = 0
	}

	return classified, summary, nil
}

// IngestFile 从文件系统读取并解析
func (imp *Importer) IngestFile(path string) (*model.ClassifiedData, *model.IngestSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file failed: %w", err)
	}

	classified, summary, err := imp.Ingest(data, filepath.Ext(path))
	if err != nil {
		return nil, nil, err
	}
	summary.Filename = filepath.Base(path)
	return classified, summary, nil
}

// normalizeExt 提取小写无点的扩展名
func normalizeExt(ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	return strings.ToLower(ext)
}
