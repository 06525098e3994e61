package server

// indexHTML is the embedded explorer page: a canvas that draws the graph and
// forwards pointer events over the websocket so dragging an artist pulls its
// neighbors along.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>artistgraph</title>
  <style>
    body, html { margin: 0; padding: 0; height: 100%; overflow: hidden; background: #f8f8f8; }
    #stage { display: block; cursor: grab; }
    #stage.dragging { cursor: grabbing; }
  </style>
</head>
<body>
  <canvas id="stage"></canvas>
  <script>
  var canvas = document.getElementById('stage');
  var ctx = canvas.getContext('2d');
  var nodes = [];
  var nodeById = {};
  var edges = [];
  var background = '#f8f8f8';
  var dragged = null;
  var ws = null;

  function resize() {
    canvas.width = window.innerWidth;
    canvas.height = window.innerHeight;
    draw();
  }
  window.addEventListener('resize', resize);

  function draw() {
    ctx.fillStyle = background;
    ctx.fillRect(0, 0, canvas.width, canvas.height);

    ctx.lineWidth = 1;
    edges.forEach(function(e) {
      var a = nodeById[e.source], b = nodeById[e.target];
      if (!a || !b) return;
      ctx.strokeStyle = e.color || '#666666';
      ctx.beginPath();
      ctx.moveTo(a.x, a.y);
      ctx.lineTo(b.x, b.y);
      ctx.stroke();
    });

    nodes.forEach(function(n) {
      ctx.fillStyle = n.color || '#4285F4';
      ctx.beginPath();
      ctx.arc(n.x, n.y, n.size || 12, 0, Math.PI * 2);
      ctx.fill();
      ctx.strokeStyle = 'rgba(0,0,0,0.3)';
      ctx.stroke();
      if (n.label) {
        ctx.fillStyle = '#333333';
        ctx.font = '10px sans-serif';
        ctx.textAlign = 'center';
        ctx.fillText(n.label, n.x, n.y + (n.size || 12) + 12);
      }
    });
  }

  function hitTest(x, y) {
    for (var i = nodes.length - 1; i >= 0; i--) {
      var n = nodes[i];
      var dx = x - n.x, dy = y - n.y;
      var r = (n.size || 12) + 2;
      if (dx * dx + dy * dy <= r * r) return n;
    }
    return null;
  }

  function send(msg) {
    if (ws && ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  canvas.addEventListener('pointerdown', function(ev) {
    var n = hitTest(ev.clientX, ev.clientY);
    if (!n) return;
    dragged = n;
    canvas.classList.add('dragging');
    canvas.setPointerCapture(ev.pointerId);
    send({type: 'grab', id: n.id});
  });

  canvas.addEventListener('pointermove', function(ev) {
    if (!dragged) return;
    dragged.x = ev.clientX;
    dragged.y = ev.clientY;
    send({type: 'move', id: dragged.id, x: ev.clientX, y: ev.clientY});
    draw();
  });

  canvas.addEventListener('pointerup', function(ev) {
    if (!dragged) return;
    send({type: 'release', id: dragged.id});
    dragged = null;
    canvas.classList.remove('dragging');
  });

  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    ws = new WebSocket(proto + location.host + '/ws');
    ws.onmessage = function(ev) {
      var frame = JSON.parse(ev.data);
      if (frame.type !== 'positions') return;
      frame.nodes.forEach(function(p) {
        var n = nodeById[p.id];
        if (!n) return;
        if (dragged && n.id === dragged.id) return; // local echo wins while dragging
        n.x = p.x;
        n.y = p.y;
      });
      draw();
    };
    ws.onclose = function() { setTimeout(connect, 1000); };
  }

  fetch('/api/graph').then(function(r) { return r.json(); }).then(function(g) {
    background = g.background || background;
    nodes = g.nodes || [];
    edges = g.edges || [];
    nodeById = {};
    nodes.forEach(function(n) { nodeById[n.id] = n; });
    resize();
    connect();
  });
  </script>
</body>
</html>
`
