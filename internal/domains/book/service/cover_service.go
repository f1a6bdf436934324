package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/pkg/logger"
)

// ErrCoverAcquisition - mọi lỗi khi tải ảnh bìa (network, status, disk) đều wrap lỗi này
var ErrCoverAcquisition = errors.New("cover acquisition failed")

var errCoverTooLarge = errors.New("cover exceeds maximum size")

type CoverConfig struct {
	BaseURL        string
	RoutePrefix    string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxBytes       int64
}

// CoverService tải ảnh bìa từ URL bên ngoài và lưu vào CoverStore
type CoverService struct {
	client *http.Client
	store  storage.CoverStore
	cfg    CoverConfig
}

func NewCoverService(store storage.CoverStore, cfg CoverConfig) *CoverService {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &readTimeoutConn{Conn: conn, timeout: cfg.ReadTimeout}, nil
		},
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}

	return &CoverService{
		client: &http.Client{
			Transport: transport,
			// redirect không được follow, 3xx xử lý như status lỗi
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		store: store,
		cfg:   cfg,
	}
}

// AcquireCover tải sourceURL, lưu thành artifact của bookID và trả về public reference.
// Reference chỉ được trả về khi toàn bộ bytes đã ghi xong.
func (s *CoverService) AcquireCover(ctx context.Context, sourceURL string, bookID int64) (string, error) {
	if err := s.download(ctx, sourceURL, bookID); err != nil {
		logger.Warn("[Cover] Acquisition failed", map[string]interface{}{
			"book_id": bookID,
			"url":     sourceURL,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("%w: %w", ErrCoverAcquisition, err)
	}

	ref := s.Reference(bookID)
	logger.Info("[Cover] Stored", map[string]interface{}{
		"book_id":   bookID,
		"key":       model.CoverKey(bookID),
		"reference": ref,
	})
	return ref, nil
}

func (s *CoverService) download(ctx context.Context, sourceURL string, bookID int64) error {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("unsupported url %q", sourceURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug(fmt.Sprintf("[Cover] book=%d status=%d", bookID, resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("bad http status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if s.cfg.MaxBytes > 0 {
		body = &maxBytesReader{r: resp.Body, remaining: s.cfg.MaxBytes}
	}

	n, err := s.store.Save(ctx, model.CoverKey(bookID), body)
	if err != nil {
		return fmt.Errorf("store cover: %w", err)
	}
	logger.Debug(fmt.Sprintf("[Cover] book=%d wrote %d bytes", bookID, n))
	return nil
}

// Reference = {baseUrl}/{prefix}/{id}
func (s *CoverService) Reference(bookID int64) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/" +
		strings.Trim(s.cfg.RoutePrefix, "/") + "/" +
		strconv.FormatInt(bookID, 10)
}

// OpenCover mở artifact để phục vụ qua HTTP
func (s *CoverService) OpenCover(ctx context.Context, bookID int64) (io.ReadCloser, error) {
	rc, err := s.store.Open(ctx, model.CoverKey(bookID))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, model.ErrCoverNotFound
	}
	return rc, err
}

// readTimeoutConn reset read deadline trước mỗi lần Read, timeout tính theo khoảng lặng giữa các lần nhận bytes
type readTimeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *readTimeoutConn) Read(p []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}

type maxBytesReader struct {
	r         io.Reader
	remaining int64
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.remaining <= 0 {
		// còn dữ liệu sau giới hạn thì lỗi, EOF đúng lúc thì hợp lệ
		var probe [1]byte
		n, err := m.r.Read(probe[:])
		if n > 0 {
			return 0, errCoverTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > m.remaining {
		p = p[:m.remaining]
	}
	n, err := m.r.Read(p)
	m.remaining -= int64(n)
	return n, err
}
