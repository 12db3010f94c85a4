package pub

import (
	"sync"

	"ssb_courier/shared"
)

type IConnManager interface {
	Get(sbotName string) (IConnection, error)
	Prewarm(sbotNames []string)
	CloseAll()
}

// connManager owns the keyed mapping from sbot name to live connection:
// create-on-miss, evict when the connection signals close, close-all on
// shutdown.
type connManager struct {
	logger    shared.ILogger
	connector IConnector
	mu        sync.Mutex
	conns     map[string]IConnection
}

func NewConnManager(logger shared.ILogger, connector IConnector) IConnManager {
	return &connManager{
		logger:    logger,
		connector: connector,
		conns:     make(map[string]IConnection),
	}
}

func (cm *connManager) Get(sbotName string) (IConnection, error) {

	cm.mu.Lock()
	if conn, ok := cm.conns[sbotName]; ok {
		cm.mu.Unlock()
		return conn, nil
	}
	cm.mu.Unlock()

	// Dial outside the lock; a slow handshake must not block other sbots.
	conn, err := cm.connector.Connect(sbotName)
	if err != nil {
		return nil, err
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	if prev, ok := cm.conns[sbotName]; ok {
		// Lost the race against another caller; keep the first connection.
		_ = conn.Close()
		return prev, nil
	}
	cm.conns[sbotName] = conn
	cm.logger.Printf("Connection to sbot %s established as %s", sbotName, conn.Whoami())

	go func() {
		<-conn.Done()
		cm.evict(sbotName, conn)
	}()

	return conn, nil
}

// Prewarm establishes connections best-effort; failures are only logged,
// since the posting path will dial (and report) again.
func (cm *connManager) Prewarm(sbotNames []string) {
	for _, name := range sbotNames {
		if _, err := cm.Get(name); err != nil {
			cm.logger.Warnf("Unable to pre-connect to sbot %q; will retry when posting: %v", name, err)
		}
	}
}

func (cm *connManager) evict(sbotName string, conn IConnection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.conns[sbotName] == conn {
		delete(cm.conns, sbotName)
		cm.logger.Printf("Connection to sbot %s closed", sbotName)
	}
}

func (cm *connManager) CloseAll() {
	cm.mu.Lock()
	conns := cm.conns
	cm.conns = make(map[string]IConnection)
	cm.mu.Unlock()

	for name, conn := range conns {
		if err := conn.Close(); err != nil {
			cm.logger.Errorf("Unable to close sbot %s connection: %v", name, err)
		}
	}
}
