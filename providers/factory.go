package providers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/giarcheuli/docparser/providers/contracts"
	tokenContracts "github.com/giarcheuli/docparser/token_management/contracts"
)

// ProviderConstructor builds a chat provider from its settings. Token usage
// is reported through tokenManagement when the backend exposes it.
type ProviderConstructor func(settings *ProviderSettings, tokenManagement tokenContracts.ITokenManagement) contracts.IChatAIProvider

var (
	registryMutex sync.RWMutex
	registry      = make(map[string]ProviderConstructor)
)

// Register makes a provider constructor available under name. Provider
// packages call this from init; importing a provider package is what makes it
// selectable.
func Register(name string, constructor ProviderConstructor) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	registry[name] = constructor
}

// NewChatProvider builds the named provider from its settings.
func NewChatProvider(name string, settings *ProviderSettings, tokenManagement tokenContracts.ITokenManagement) (contracts.IChatAIProvider, error) {
	registryMutex.RLock()
	constructor, ok := registry[name]
	registryMutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown AI provider: %s", name)
	}
	return constructor(settings, tokenManagement), nil
}

// Names returns the registered provider names in sorted order.
func Names() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
