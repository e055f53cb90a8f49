package modification

import "github.com/louisbranch/biomemod/internal/world/worldgen"

// WeatherEditor writes weather fields directly to the biome.
type WeatherEditor struct {
	ctx *Context
}

func (e *WeatherEditor) update(apply func(*worldgen.Weather)) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	weather := e.ctx.biome.Weather()
	apply(&weather)
	e.ctx.biome.SetWeather(weather)
	return nil
}

// SetPrecipitation sets the precipitation kind.
func (e *WeatherEditor) SetPrecipitation(p worldgen.Precipitation) error {
	if !p.Valid() {
		return invalidEnum("precipitation", p)
	}
	return e.update(func(w *worldgen.Weather) { w.Precipitation = p })
}

// SetTemperature sets the base temperature.
func (e *WeatherEditor) SetTemperature(temperature float32) error {
	return e.update(func(w *worldgen.Weather) { w.Temperature = temperature })
}

// SetTemperatureModifier sets the positional temperature modifier.
func (e *WeatherEditor) SetTemperatureModifier(m worldgen.TemperatureModifier) error {
	if !m.Valid() {
		return invalidEnum("temperature modifier", m)
	}
	return e.update(func(w *worldgen.Weather) { w.TemperatureModifier = m })
}

// SetDownfall sets the downfall (humidity).
func (e *WeatherEditor) SetDownfall(downfall float32) error {
	return e.update(func(w *worldgen.Weather) { w.Downfall = downfall })
}
