// Package sftpstore keeps invoice PDFs on an SFTP server that is also
// published over HTTP(S) under a public base URL.
package sftpstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	CharmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/unclebandit/tailorbook-backend/internal/config"
	"github.com/unclebandit/tailorbook-backend/internal/service"
)

// Store implements service.FileStorage. File ids are paths relative to Dir.
type Store struct {
	Client        *sftp.Client
	Dir           string
	PublicBaseURL string
	Logger        *CharmLog.Logger

	conn *ssh.Client
}

var _ service.FileStorage = (*Store)(nil)

// Dial connects with password auth. An empty SFTPHostKey skips host verification.
func Dial(cfg config.StorageConfig, logger *CharmLog.Logger) (*Store, error) {
	callback := ssh.InsecureIgnoreHostKey()
	if cfg.SFTPHostKey != "" {
		pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(cfg.SFTPHostKey))
		if err != nil {
			return nil, fmt.Errorf("invalid SFTP host key: %w", err)
		}
		callback = ssh.FixedHostKey(pub)
	} else {
		logger.Warn("⚠️ SFTP host key not set, server identity is not verified")
	}

	conn, err := ssh.Dial("tcp", cfg.SFTPAddr, &ssh.ClientConfig{
		User:            cfg.SFTPUser,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.SFTPPassword)},
		HostKeyCallback: callback,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dial SFTP server: %w", err)
	}
	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to start SFTP session: %w", err)
	}
	logger.Info("✅ Connected to SFTP storage", "addr", cfg.SFTPAddr, "dir", cfg.SFTPDir)
	return &Store{Client: client, Dir: cfg.SFTPDir, PublicBaseURL: cfg.PublicBaseURL, Logger: logger, conn: conn}, nil
}

func (s *Store) Close() error {
	err := s.Client.Close()
	if s.conn != nil {
		s.conn.Close()
	}
	return err
}

var nameReplacer = strings.NewReplacer("/", "-", "\\", "-")

// Upload writes content to <Dir>/<folder>/<random>/<name>, so invoices for
// customers with the same name never overwrite each other. A failed write
// removes the partial file and its directory.
func (s *Store) Upload(ctx context.Context, folderID, name string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := path.Join(folderID, uuid.NewString(), nameReplacer.Replace(name))
	full := path.Join(s.Dir, rel)
	dir := path.Dir(full)

	if err := s.Client.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := s.Client.Create(full)
	if err != nil {
		s.cleanup("", dir)
		return "", err
	}
	if _, err := f.ReadFrom(content); err != nil {
		f.Close()
		s.cleanup(full, dir)
		return "", err
	}
	if err := f.Close(); err != nil {
		s.cleanup(full, dir)
		return "", err
	}
	return rel, nil
}

func (s *Store) cleanup(full, dir string) {
	if full != "" {
		if err := s.Client.Remove(full); err != nil && s.Logger != nil {
			s.Logger.Warn("⚠️ failed to remove partial upload", "path", full, "err", err)
		}
	}
	if err := s.Client.RemoveDirectory(dir); err != nil && s.Logger != nil {
		s.Logger.Warn("⚠️ failed to remove upload directory", "path", dir, "err", err)
	}
}

// ShareAnyoneReader makes the file world-readable for the web server in front.
func (s *Store) ShareAnyoneReader(ctx context.Context, fileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Client.Chmod(path.Join(s.Dir, fileID), 0o644)
}

func (s *Store) ViewLink(ctx context.Context, fileID string) (string, error) {
	if s.PublicBaseURL == "" {
		return "", fmt.Errorf("SFTP_PUBLIC_BASE_URL is not set")
	}
	if _, err := s.Client.Stat(path.Join(s.Dir, fileID)); err != nil {
		return "", err
	}
	segments := strings.Split(fileID, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(s.PublicBaseURL, "/") + "/" + strings.Join(segments, "/"), nil
}

func (s *Store) Delete(ctx context.Context, fileID string) error {
	return s.Client.Remove(path.Join(s.Dir, fileID))
}
