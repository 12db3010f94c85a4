package pub

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-fed/httpsig"
	"ssb_courier/shared"
)

const bridgeTimeoutSec = 30

// bridgeConnector dials the HTTP bridge that runs alongside each sbot
// instance and exposes its publish/blob-add surface. Requests are signed
// with the bot's RSA key so the bridge only accepts this courier.
type bridgeConnector struct {
	cfg       *shared.Config
	logger    shared.ILogger
	userAgent shared.IUserAgent
}

func NewBridgeConnector(cfg *shared.Config, logger shared.ILogger, userAgent shared.IUserAgent) IConnector {
	return &bridgeConnector{cfg: cfg, logger: logger, userAgent: userAgent}
}

func (bc *bridgeConnector) Connect(sbotName string) (IConnection, error) {

	sbotCfg := bc.cfg.Sbots[sbotName]
	if sbotCfg == nil {
		return nil, fmt.Errorf("no sbot named %q in config", sbotName)
	}

	privKey, err := loadPrivKey(sbotCfg.KeyFile, bc.cfg.Secrets.KeyPass)
	if err != nil {
		return nil, fmt.Errorf("unable to load key for sbot %q: %v", sbotName, err)
	}

	conn := &bridgeConn{
		logger:    bc.logger,
		userAgent: bc.userAgent,
		sbotName:  sbotName,
		baseUrl:   sbotCfg.BridgeUrl,
		keyId:     sbotCfg.BridgeUrl + "#courier",
		privKey:   privKey,
		client:    &http.Client{Timeout: bridgeTimeoutSec * time.Second},
		done:      make(chan struct{}),
	}

	// Handshake: ask the bridge who we are publishing as.
	var who whoamiResp
	if err = conn.getJson("/whoami", &who); err != nil {
		return nil, fmt.Errorf("whoami handshake with sbot %q failed: %v", sbotName, err)
	}
	conn.author = who.Id

	return conn, nil
}

func loadPrivKey(fileName, keyPass string) (*rsa.PrivateKey, error) {

	pemBytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	privKeyBytes := block.Bytes
	if x509.IsEncryptedPEMBlock(block) {
		privKeyBytes, err = x509.DecryptPEMBlock(block, []byte(keyPass))
		if err != nil {
			return nil, err
		}
	}
	return x509.ParsePKCS1PrivateKey(privKeyBytes)
}

type whoamiResp struct {
	Id string `json:"id"`
}

type blobAddResp struct {
	Hash string `json:"hash"`
}

type bridgeConn struct {
	logger    shared.ILogger
	userAgent shared.IUserAgent
	sbotName  string
	baseUrl   string
	keyId     string
	author    string
	privKey   *rsa.PrivateKey
	client    *http.Client
	done      chan struct{}
	closeOnce sync.Once
}

func (c *bridgeConn) SbotName() string {
	return c.sbotName
}

func (c *bridgeConn) Whoami() string {
	return c.author
}

func (c *bridgeConn) Done() <-chan struct{} {
	return c.done
}

func (c *bridgeConn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// markBroken signals the connection manager to evict us; transport-level
// failures mean the bridge went away and a fresh dial is needed.
func (c *bridgeConn) markBroken() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *bridgeConn) Publish(msg *PostMessage) (*PublishReceipt, error) {

	bodyJson, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.baseUrl+"/publish", bytes.NewBuffer(bodyJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if err = c.signRequest(req, bodyJson); err != nil {
		return nil, err
	}

	var receipt PublishReceipt
	if err = c.doJson(req, &receipt); err != nil {
		return nil, err
	}
	c.logger.Debugf("Published message %s to sbot %s", receipt.Key, c.sbotName)
	return &receipt, nil
}

func (c *bridgeConn) BlobAdd(r io.Reader) (hash string, err error) {

	var req *http.Request
	if req, err = http.NewRequest("POST", c.baseUrl+"/blobs/add", r); err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	// The body is streamed, so it is excluded from the signature digest.
	if err = c.signRequest(req, nil); err != nil {
		return "", err
	}

	var resp blobAddResp
	if err = c.doJson(req, &resp); err != nil {
		return "", err
	}
	return resp.Hash, nil
}

func (c *bridgeConn) getJson(path string, out interface{}) error {
	req, err := http.NewRequest("GET", c.baseUrl+path, nil)
	if err != nil {
		return err
	}
	if err = c.signRequest(req, nil); err != nil {
		return err
	}
	return c.doJson(req, out)
}

func (c *bridgeConn) signRequest(req *http.Request, bodyJson []byte) error {

	req.Header.Set("host", req.URL.Host)
	req.Header.Set("date", time.Now().UTC().Format(http.TimeFormat))
	c.userAgent.AddUserAgent(req)

	headers := []string{httpsig.RequestTarget, "host", "date"}
	if bodyJson != nil {
		headers = append(headers, "digest")
	}
	signer, _, err := httpsig.NewSigner(
		[]httpsig.Algorithm{httpsig.RSA_SHA256},
		httpsig.DigestSha256,
		headers,
		httpsig.Signature,
		0)
	if err != nil {
		return err
	}
	return signer.SignRequest(c.privKey, c.keyId, req, bodyJson)
}

func (c *bridgeConn) doJson(req *http.Request, out interface{}) error {

	resp, err := c.client.Do(req)
	if err != nil {
		// Transport failure: the bridge is gone, have the manager evict us.
		c.markBroken()
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bridge %s returned status %s: %s", c.sbotName, resp.Status, respBody)
	}
	if out != nil {
		if err = json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("bad response from bridge %s: %v", c.sbotName, err)
		}
	}
	return nil
}
