package boreas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Register_AddsClass(t *testing.T) {
	catalog := NewEmptyCatalog()

	err := catalog.Register("chat.Handler", Constructor(func() *fieldHandler { return &fieldHandler{} }),
		HandlerServiceMeta{Path: "/chat"})

	require.NoError(t, err)
	class, err := catalog.Load("chat.Handler")
	require.NoError(t, err)
	assert.Equal(t, "chat.Handler", class.Name)

	annotation, ok := class.Annotation(HandlerService)
	assert.True(t, ok)
	assert.Equal(t, HandlerServiceMeta{Path: "/chat"}, annotation)

	_, ok = class.Annotation(ManagedService)
	assert.False(t, ok)
}

func TestCatalog_Register_RejectsDuplicate(t *testing.T) {
	catalog := NewEmptyCatalog()
	factory := Constructor(func() *fieldHandler { return &fieldHandler{} })

	require.NoError(t, catalog.Register("chat.Handler", factory))
	err := catalog.Register("chat.Handler", factory)

	assert.ErrorIs(t, err, ErrDuplicateClass)
}

func TestCatalog_Register_RequiresNameAndFactory(t *testing.T) {
	catalog := NewEmptyCatalog()

	assert.Error(t, catalog.Register("", Constructor(func() *fieldHandler { return &fieldHandler{} })))
	assert.Error(t, catalog.Register("chat.Handler", nil))
}

func TestCatalog_MustRegister_PanicsOnDuplicate(t *testing.T) {
	catalog := NewEmptyCatalog()
	factory := Constructor(func() *fieldHandler { return &fieldHandler{} })
	catalog.MustRegister("chat.Handler", factory)

	assert.Panics(t, func() {
		catalog.MustRegister("chat.Handler", factory)
	})
}

func TestCatalog_Load_UnknownClass(t *testing.T) {
	catalog := NewEmptyCatalog()

	_, err := catalog.Load("chat.Missing")

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "chat.Missing", loadErr.ClassName)
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestCatalog_Names_SortedWithBuiltins(t *testing.T) {
	catalog := NewCatalog()
	catalog.MustRegister("a.First", Constructor(func() *plainObject { return &plainObject{} }))

	names := catalog.Names()

	assert.Equal(t, "a.First", names[0])
	assert.Contains(t, names, HeartbeatInterceptorClassName)
	assert.Contains(t, names, BlockingAsyncSupportClassName)
	assert.IsIncreasing(t, names)
}

func TestInstantiate_ReturnsTypedInstance(t *testing.T) {
	catalog := NewEmptyCatalog()
	catalog.MustRegister("chat.Handler", Constructor(func() *fieldHandler { return &fieldHandler{Name: "x"} }))

	handler, err := Instantiate[Handler](catalog, "chat.Handler")

	require.NoError(t, err)
	assert.Equal(t, "x", handler.(*fieldHandler).Name)
}

func TestInstantiate_BuildsFreshInstances(t *testing.T) {
	catalog := NewEmptyCatalog()
	calls := 0
	catalog.MustRegister("chat.Handler", counter(&calls, func() *fieldHandler { return &fieldHandler{} }))

	first, err := Instantiate[Handler](catalog, "chat.Handler")
	require.NoError(t, err)
	second, err := Instantiate[Handler](catalog, "chat.Handler")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.NotSame(t, first, second)
}

func TestInstantiate_WrongCapability(t *testing.T) {
	catalog := NewEmptyCatalog()
	catalog.MustRegister("chat.Plain", Constructor(func() *plainObject { return &plainObject{} }))

	_, err := Instantiate[Handler](catalog, "chat.Plain")

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, ErrWrongCapability)
	assert.Contains(t, err.Error(), "boreas.Handler")
}

func TestInstantiate_FactoryError(t *testing.T) {
	catalog := NewEmptyCatalog()
	cause := errors.New("no database")
	catalog.MustRegister("chat.Handler", failingFactory(cause))

	_, err := Instantiate[Handler](catalog, "chat.Handler")

	assert.ErrorIs(t, err, ErrNotConstructible)
	assert.ErrorIs(t, err, cause)
}

func TestInstantiate_FactoryPanic(t *testing.T) {
	catalog := NewEmptyCatalog()
	catalog.MustRegister("chat.Handler", panickingFactory("boom"))

	_, err := Instantiate[Handler](catalog, "chat.Handler")

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, ErrNotConstructible)
	assert.Contains(t, err.Error(), "boom")
}

func TestInstantiate_NilInstance(t *testing.T) {
	catalog := NewEmptyCatalog()
	catalog.MustRegister("chat.Handler", func() (any, error) { return nil, nil })

	_, err := Instantiate[Handler](catalog, "chat.Handler")

	assert.ErrorIs(t, err, ErrNotConstructible)
}

func TestAssignment_Split(t *testing.T) {
	key, value, err := Assignment("room=lobby").Split()
	require.NoError(t, err)
	assert.Equal(t, "room", key)
	assert.Equal(t, "lobby", value)
}

func TestAssignment_Split_KeepsFurtherEquals(t *testing.T) {
	key, value, err := Assignment("key=a=b").Split()
	require.NoError(t, err)
	assert.Equal(t, "key", key)
	assert.Equal(t, "a=b", value)
}

func TestAssignment_Split_EmptyValue(t *testing.T) {
	key, value, err := Assignment("flag=").Split()
	require.NoError(t, err)
	assert.Equal(t, "flag", key)
	assert.Equal(t, "", value)
}

func TestAssignment_Split_Malformed(t *testing.T) {
	_, _, err := Assignment("novalue").Split()
	assert.ErrorIs(t, err, ErrMalformedAssignment)
}

func TestMarkerKind_String(t *testing.T) {
	assert.Equal(t, "HandlerService", HandlerService.String())
	assert.Equal(t, "ManagedHandlerWrapperService", ManagedHandlerWrapperService.String())
	assert.Equal(t, "MarkerKind(99)", MarkerKind(99).String())
}

func TestMarkerKinds_ListsEveryKind(t *testing.T) {
	kinds := MarkerKinds()

	assert.Len(t, kinds, 17)
	assert.Equal(t, HandlerService, kinds[0])
	assert.Equal(t, ManagedHandlerWrapperService, kinds[16])
	for _, kind := range kinds {
		assert.True(t, kind.IsValid(), kind.String())
	}
	assert.False(t, MarkerKind(0).IsValid())
}

func TestParseMarkerKind(t *testing.T) {
	kind, err := ParseMarkerKind("WebSocketHandlerService")
	require.NoError(t, err)
	assert.Equal(t, WebSocketHandlerService, kind)

	kind, err = ParseMarkerKind("BroadcasterCacheService")
	require.NoError(t, err)
	assert.Equal(t, CacheService, kind)

	_, err = ParseMarkerKind("GadgetService")
	assert.Error(t, err)
}
