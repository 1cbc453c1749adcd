// Package avatar приводит загруженные изображения к каноническому аватару:
// квадрат 250×250 в JPEG с фиксированным качеством, по одному файлу на учётную запись.
package avatar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

const (
	// Size сторона квадратного аватара в пикселях.
	Size = 250
	// Quality качество JPEG при перекодировании.
	Quality = 60
	// URLPrefix публичный префикс, под которым раздаются аватары.
	URLPrefix = "/avatars/"
)

// Processor сохраняет аватары в каталог dir, используя tmpDir для временных файлов загрузки.
type Processor struct {
	dir    string
	tmpDir string
	log    *slog.Logger
}

// NewProcessor создаёт Processor и при необходимости создаёт оба каталога.
func NewProcessor(dir, tmpDir string, log *slog.Logger) (*Processor, error) {
	const op = "avatar.NewProcessor"
	for _, d := range []string{dir, tmpDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &Processor{dir: dir, tmpDir: tmpDir, log: log}, nil
}

// Process сохраняет загрузку во временный файл, обрезает изображение по принципу cover
// до Size×Size, перекодирует в JPEG и записывает как {accountUUID}.jpg, заменяя прежний аватар.
//
// Временный файл загрузки удаляется при любом исходе.
// Возвращает публичный относительный путь аватара.
func (p *Processor) Process(ctx context.Context, src io.Reader, accountUUID string) (string, error) {
	const op = "avatar.Process"

	tmpPath, err := p.stage(src)
	if tmpPath != "" {
		defer p.remove(tmpPath)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	img, err := imaging.Open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrUnsupportedImage, err)
	}
	img = imaging.Fill(img, Size, Size, imaging.Center, imaging.Lanczos)

	fileName := accountUUID + ".jpg"
	if err := p.write(fileName, func(w io.Writer) error {
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(Quality))
	}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return URLPrefix + fileName, nil
}

// stage копирует загрузку во временный файл. Путь возвращается, даже если копирование
// не удалось, чтобы вызывающий мог его удалить.
func (p *Processor) stage(src io.Reader) (string, error) {
	f, err := os.CreateTemp(p.tmpDir, "upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		return f.Name(), err
	}
	return f.Name(), f.Close()
}

// write пишет файл во временный путь рядом с целевым и атомарно переименовывает,
// так что параллельные загрузки для одной учётной записи не оставляют битый файл.
func (p *Processor) write(fileName string, encode func(io.Writer) error) error {
	f, err := os.CreateTemp(p.dir, "."+fileName+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := encode(f); err != nil {
		_ = f.Close()
		p.remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		p.remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		p.remove(tmp)
		return err
	}
	if err := os.Rename(tmp, filepath.Join(p.dir, fileName)); err != nil {
		p.remove(tmp)
		return err
	}
	return nil
}

func (p *Processor) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.log.Warn("failed to remove temporary file", slog.String("path", path), sl.Err(err))
	}
}
