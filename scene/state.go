package scene

// SceneState is the ordered list of object snapshots for one captured frame.
// Order is insertion order and is preserved through save/load.
type SceneState struct {
	objects []ObjectState
}

func (s *SceneState) Add(o ObjectState) {
	s.objects = append(s.objects, o)
}

func (s *SceneState) Clear() {
	s.objects = s.objects[:0]
}

func (s *SceneState) Len() int {
	return len(s.objects)
}

// Objects returns the snapshots in order. The slice is shared; callers must
// not hold it across a Clear or Load.
func (s *SceneState) Objects() []ObjectState {
	return s.objects
}

// Save writes the object list to path as a JSON array. An empty list writes
// an empty array, not null.
func (s *SceneState) Save(path string) error {
	objects := s.objects
	if objects == nil {
		objects = []ObjectState{}
	}
	return WriteJSON(path, objects)
}

// Load replaces the object list with the array at path. The current list is
// only touched after the file has been read and parsed; on error the state
// is exactly as before.
func (s *SceneState) Load(path string) error {
	var objects []ObjectState
	if err := ReadJSON(path, &objects); err != nil {
		return err
	}
	s.objects = objects
	return nil
}
